package services

import (
	"github.com/sirupsen/logrus"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/models"
	"github.com/devmatch/devmatch-backend/internal/store"
)

// JobService drives the job and application lifecycles on top of the store
// and enforces who may trigger which transition. The store guards the state
// machines themselves; this layer adds ownership and role checks.
type JobService struct {
	store store.Store
	log   *logrus.Logger

	// rejectSiblingsOnAccept controls whether accepting one application
	// auto-rejects the job's other pending applications. Off by default:
	// historically siblings stayed pending.
	rejectSiblingsOnAccept bool
}

func NewJobService(st store.Store, log *logrus.Logger, rejectSiblingsOnAccept bool) *JobService {
	return &JobService{store: st, log: log, rejectSiblingsOnAccept: rejectSiblingsOnAccept}
}

// PostJob creates an open job owned by the acting recruiter.
func (s *JobService) PostJob(actor auth.Identity, draft models.JobDraft) (models.Job, error) {
	if !actor.IsRecruiter() {
		return models.Job{}, apperrors.ErrForbidden
	}
	draft.RecruiterID = actor.UserID
	job, err := s.store.CreateJob(draft)
	if err != nil {
		return models.Job{}, err
	}
	s.log.WithFields(logrus.Fields{"job_id": job.ID, "recruiter_id": actor.UserID}).Info("job posted")
	return job, nil
}

// Apply submits a proposal from the acting developer against an open job.
func (s *JobService) Apply(actor auth.Identity, jobID, proposal string) (models.Application, error) {
	if !actor.IsDeveloper() {
		return models.Application{}, apperrors.ErrForbidden
	}
	app, err := s.store.CreateApplication(models.ApplicationDraft{
		JobID:       jobID,
		DeveloperID: actor.UserID,
		Proposal:    proposal,
	})
	if err != nil {
		return models.Application{}, err
	}
	s.log.WithFields(logrus.Fields{"application_id": app.ID, "job_id": jobID}).Info("application submitted")
	return app, nil
}

// ApplicationsForJob lists a job's applications for its owning recruiter.
func (s *JobService) ApplicationsForJob(actor auth.Identity, jobID string) ([]models.Application, error) {
	if _, err := s.ownedJob(actor, jobID); err != nil {
		return nil, err
	}
	return s.store.ListApplicationsForJob(jobID)
}

// Accept marks an application accepted and moves its job to in_progress.
// Only the recruiter owning the job may accept.
func (s *JobService) Accept(actor auth.Identity, applicationID string) (models.Application, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return models.Application{}, err
	}
	if _, err := s.ownedJob(actor, app.JobID); err != nil {
		return models.Application{}, err
	}
	accepted, err := s.store.AcceptApplication(applicationID, s.rejectSiblingsOnAccept)
	if err != nil {
		return models.Application{}, err
	}
	s.log.WithFields(logrus.Fields{
		"application_id": applicationID,
		"job_id":         app.JobID,
		"developer_id":   accepted.DeveloperID,
	}).Info("application accepted, job in progress")
	return accepted, nil
}

// Reject marks an application rejected. The job is untouched.
func (s *JobService) Reject(actor auth.Identity, applicationID string) (models.Application, error) {
	app, err := s.store.GetApplication(applicationID)
	if err != nil {
		return models.Application{}, err
	}
	if _, err := s.ownedJob(actor, app.JobID); err != nil {
		return models.Application{}, err
	}
	return s.store.RejectApplication(applicationID)
}

// Complete closes out an in_progress job: status moves to completed and the
// store records the payment (with platform commission) and the recruiter's
// review of the developer in one step.
func (s *JobService) Complete(actor auth.Identity, jobID string, rating int, comment string) (models.Payment, models.Review, error) {
	if _, err := s.ownedJob(actor, jobID); err != nil {
		return models.Payment{}, models.Review{}, err
	}
	payment, review, err := s.store.CompleteJob(jobID, rating, comment)
	if err != nil {
		return models.Payment{}, models.Review{}, err
	}
	s.log.WithFields(logrus.Fields{
		"job_id":       jobID,
		"amount":       payment.Amount,
		"commission":   payment.Commission,
		"developer_id": payment.DeveloperID,
	}).Info("job completed")
	return payment, review, nil
}

// Cancel withdraws a job that has not finished yet.
func (s *JobService) Cancel(actor auth.Identity, jobID string) (models.Job, error) {
	if _, err := s.ownedJob(actor, jobID); err != nil {
		return models.Job{}, err
	}
	job, err := s.store.CancelJob(jobID)
	if err != nil {
		return models.Job{}, err
	}
	s.log.WithField("job_id", jobID).Info("job canceled")
	return job, nil
}

// JobsForRecruiter lists the acting recruiter's own jobs.
func (s *JobService) JobsForRecruiter(actor auth.Identity) ([]models.Job, error) {
	if !actor.IsRecruiter() {
		return nil, apperrors.ErrForbidden
	}
	return s.store.JobsByRecruiter(actor.UserID)
}

// ApplicationsForDeveloper lists the acting developer's own applications.
func (s *JobService) ApplicationsForDeveloper(actor auth.Identity) ([]models.Application, error) {
	if !actor.IsDeveloper() {
		return nil, apperrors.ErrForbidden
	}
	return s.store.ListApplicationsForDeveloper(actor.UserID)
}

// Earnings reports the acting developer's net receipts: the sum of
// (amount - commission) over their completed payments.
func (s *JobService) Earnings(actor auth.Identity) (float64, error) {
	if !actor.IsDeveloper() {
		return 0, apperrors.ErrForbidden
	}
	return s.store.EarningsForDeveloper(actor.UserID)
}

// CompletedJobs lists finished jobs from the acting user's side of the table.
func (s *JobService) CompletedJobs(actor auth.Identity) ([]models.Job, error) {
	switch {
	case actor.IsRecruiter():
		return s.store.CompletedJobsByRecruiter(actor.UserID)
	case actor.IsDeveloper():
		return s.store.CompletedJobsByDeveloper(actor.UserID)
	}
	return nil, apperrors.ErrForbidden
}

// PlatformCommission reports the platform's total take. Admin only.
func (s *JobService) PlatformCommission(actor auth.Identity) (float64, error) {
	if !actor.IsAdmin() {
		return 0, apperrors.ErrForbidden
	}
	return s.store.TotalCommission()
}

// Job returns a single job with its recruiter and applications joined.
func (s *JobService) Job(jobID string) (models.Job, error) {
	return s.store.GetJob(jobID)
}

// Profile returns a user together with the reviews written about them.
func (s *JobService) Profile(userID string) (models.User, []models.Review, error) {
	user, err := s.store.GetUser(userID)
	if err != nil {
		return models.User{}, nil, err
	}
	reviews, err := s.store.ReviewsForUser(userID)
	if err != nil {
		return models.User{}, nil, err
	}
	return user, reviews, nil
}

// ownedJob resolves the job and checks the actor is its recruiter. Admins
// pass the ownership check.
func (s *JobService) ownedJob(actor auth.Identity, jobID string) (models.Job, error) {
	job, err := s.store.GetJob(jobID)
	if err != nil {
		return models.Job{}, err
	}
	if !actor.IsAdmin() && (job.RecruiterID != actor.UserID || !actor.IsRecruiter()) {
		return models.Job{}, apperrors.ErrForbidden
	}
	return job, nil
}
