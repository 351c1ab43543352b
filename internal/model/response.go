package model

// AuthPayload holds the user and token returned by login and registration
type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AuthResponse is the envelope for login and registration responses
type AuthResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    AuthPayload `json:"data"`
}

// DashboardStats holds the admin dashboard aggregate counts
type DashboardStats struct {
	TotalJobs           int64 `json:"total_jobs"`
	TotalUsers          int64 `json:"total_users"`
	TotalApplications   int64 `json:"total_applications"`
	PendingApplications int64 `json:"pending_applications"`
}
