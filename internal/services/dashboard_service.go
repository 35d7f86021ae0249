package services

import (
	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/models"
)

// DashboardServiceProvider defines the interface for dashboard data.
type DashboardServiceProvider interface {
	ForClaims(claims *auth.Claims) models.Dashboard
}

// DashboardService builds the dashboard from session claims and a fixed
// catalogue. It never touches the store, so output depends on the token alone.
type DashboardService struct {
	jobs  []models.Job
	chart models.Chart
}

// NewDashboardService creates a dashboard service with the built-in catalogue.
func NewDashboardService() *DashboardService {
	return &DashboardService{
		jobs: []models.Job{
			{Role: "Software Engineer", Company: "Infosys", Skills: "Java, Spring, SQL"},
			{Role: "Data Analyst", Company: "TCS", Skills: "Python, SQL, Power BI"},
			{Role: "ML Engineer", Company: "Wipro", Skills: "Python, TensorFlow, MLOps"},
			{Role: "Cloud Engineer", Company: "Accenture", Skills: "AWS, Terraform, Linux"},
		},
		chart: models.Chart{
			Labels: []string{"B.Tech CSE", "B.Tech ECE", "B.Sc Data Science", "MBA"},
			Counts: []int{120, 85, 64, 42},
		},
	}
}

// ForClaims returns the dashboard for the authenticated user.
func (s *DashboardService) ForClaims(claims *auth.Claims) models.Dashboard {
	jobs := make([]models.Job, len(s.jobs))
	copy(jobs, s.jobs)

	return models.Dashboard{
		Message: "Welcome, " + claims.Name + "!",
		User: models.DashboardUser{
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
		},
		Jobs: jobs,
		Chart: models.Chart{
			Labels: append([]string(nil), s.chart.Labels...),
			Counts: append([]int(nil), s.chart.Counts...),
		},
	}
}

var _ DashboardServiceProvider = (*DashboardService)(nil)
