// Package store owns the five record collections (users, jobs, applications,
// payments, reviews). Every lookup and mutation in the system goes through the
// Store interface, so the in-process implementation can be swapped for a real
// database without touching callers.
package store

import (
	"math"

	"github.com/devmatch/devmatch-backend/internal/models"
)

// CommissionRate is the platform's fixed cut of a completed job's budget.
const CommissionRate = 0.10

// CommissionFor computes the platform commission for a gross amount, rounded
// to cents.
func CommissionFor(amount float64) float64 {
	return math.Round(amount*CommissionRate*100) / 100
}

type Store interface {
	ListUsers() ([]models.User, error)
	GetUser(id string) (models.User, error)

	// ListJobs returns all jobs joined with their recruiter and applications.
	ListJobs() ([]models.Job, error)
	GetJob(id string) (models.Job, error)
	JobsByRecruiter(recruiterID string) ([]models.Job, error)
	CreateJob(draft models.JobDraft) (models.Job, error)

	ListApplicationsForJob(jobID string) ([]models.Application, error)
	ListApplicationsForDeveloper(developerID string) ([]models.Application, error)
	GetApplication(id string) (models.Application, error)
	CreateApplication(draft models.ApplicationDraft) (models.Application, error)

	// AcceptApplication marks the application accepted and moves its job to
	// in_progress. When rejectSiblings is set, the job's other pending
	// applications are rejected in the same step.
	AcceptApplication(id string, rejectSiblings bool) (models.Application, error)
	RejectApplication(id string) (models.Application, error)

	// CompleteJob moves an in_progress job to completed and records exactly
	// one Payment and one Review. Either both records are created or, on any
	// failure, neither is.
	CompleteJob(jobID string, rating int, comment string) (models.Payment, models.Review, error)
	CancelJob(jobID string) (models.Job, error)

	PaymentByJob(jobID string) (models.Payment, error)
	ReviewsForUser(userID string) ([]models.Review, error)
	CompletedJobsByRecruiter(recruiterID string) ([]models.Job, error)
	CompletedJobsByDeveloper(developerID string) ([]models.Job, error)

	// EarningsForDeveloper sums (amount - commission) over the developer's
	// completed payments.
	EarningsForDeveloper(developerID string) (float64, error)
	// TotalCommission sums the commission of all completed payments.
	TotalCommission() (float64, error)
}
