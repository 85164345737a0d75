package dashboard

// Stats is the dashboard payload. Field names match the frontend's
// camelCase expectations.
type Stats struct {
	TotalPatients      int    `json:"totalPatients"`
	TodaysVisits       int    `json:"todaysVisits"`
	PendingLabTests    int    `json:"pendingLabTests"`
	PendingXrays       int    `json:"pendingXrays"`
	TodaysAppointments int    `json:"todaysAppointments"`
	Timestamp          string `json:"timestamp"`
	LastUpdated        string `json:"last_updated"`
}
