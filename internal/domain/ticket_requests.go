package domain

type CreateTicketRequest struct {
	Description string `json:"description" validate:"required"`
	Location    LatLng `json:"location"`
	// AllowOutOfBounds overrides the soft geographic-bounds check.
	AllowOutOfBounds bool `json:"allow_out_of_bounds,omitempty"`
}

type AttachEvidenceRequest struct {
	PhotoRef string `json:"photo_ref" validate:"required,url"`
}

type FinalizeTicketRequest struct {
	FinalComment string `json:"final_comment,omitempty" validate:"omitempty,max=500"`
}

type RouteRequest struct {
	Mode string `json:"mode" validate:"transport_mode"`
}

// TicketView is a ticket decorated for a list row: straight-line distance
// from the viewer when their position is known. No routing call is made
// for list rows.
type TicketView struct {
	RescueTicket
	DistanceMeters   *float64 `json:"distance_meters,omitempty"`
	DistanceDisplay  string   `json:"distance_display,omitempty"`
}

type TicketListResponse struct {
	Tickets []TicketView `json:"tickets"`
	Total   int          `json:"total"`
}
