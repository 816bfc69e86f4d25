package domain

// ImpactStats are the per-user statistics derived from the user's full
// ticket history (reporter or helper).
type ImpactStats struct {
	Participations         int     `json:"participations"`
	Rescued                int     `json:"rescued"`
	Reported               int     `json:"reported"`
	CompletionRate         float64 `json:"completion_rate"`
	AverageDurationMinutes float64 `json:"average_duration_minutes"`
	ImpactScore            int     `json:"impact_score"`
	Streak                 int     `json:"streak"`
}
