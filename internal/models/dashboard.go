package models

// Job is a row of the dashboard's sample placements table.
type Job struct {
	Role    string `json:"role"`
	Company string `json:"company"`
	Skills  string `json:"skills"`
}

// Chart feeds the dashboard bar chart.
type Chart struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// DashboardUser is the identity echoed back from the session token.
type DashboardUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Dashboard is the payload of GET /api/dashboard.
type Dashboard struct {
	Message string        `json:"message"`
	User    DashboardUser `json:"user"`
	Jobs    []Job         `json:"jobs"`
	Chart   Chart         `json:"chart"`
}
