package domain

// TicketStats is the aggregate admin view over the live collection.
type TicketStats struct {
	Pending        int `json:"pending"`
	Assigned       int `json:"assigned"`
	Finalized      int `json:"finalized"`
	CreatedToday   int `json:"created_today"`
	FinalizedToday int `json:"finalized_today"`
}
