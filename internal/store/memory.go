package store

import (
	"strings"
	"sync"
	"time"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
	"github.com/devmatch/devmatch-backend/internal/models"
)

// MemoryStore is the in-process system of record. It backs the whole
// application when no database is configured and doubles as the fallback
// dataset when the remote source is unreachable.
//
// Access is guarded by a single mutex; actions are discrete and sequential,
// this is not a shared multi-user database.
type MemoryStore struct {
	mu           sync.RWMutex
	users        []models.User
	jobs         []models.Job
	applications []models.Application
	payments     []models.Payment
	reviews      []models.Review

	now func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) ListUsers() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) GetUser(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.findUser(id)
	if !ok {
		return models.User{}, apperrors.ErrNotFound
	}
	return u, nil
}

// FindUserByEmail resolves a user by email, case-insensitively. Login flows
// key on email, so lookups must not be case-sensitive.
func (s *MemoryStore) FindUserByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, apperrors.ErrNotFound
}

func (s *MemoryStore) ListJobs() ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, s.joinJob(j))
	}
	return out, nil
}

func (s *MemoryStore) GetJob(id string) (models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, _, ok := s.findJob(id)
	if !ok {
		return models.Job{}, apperrors.ErrNotFound
	}
	return s.joinJob(j), nil
}

func (s *MemoryStore) JobsByRecruiter(recruiterID string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Job
	for _, j := range s.jobs {
		if j.RecruiterID == recruiterID {
			out = append(out, s.joinJob(j))
		}
	}
	return out, nil
}

func (s *MemoryStore) CreateJob(draft models.JobDraft) (models.Job, error) {
	if err := draft.Validate(); err != nil {
		return models.Job{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	recruiter, ok := s.findUser(draft.RecruiterID)
	if !ok || !recruiter.IsRecruiter() {
		return models.Job{}, apperrors.Validation("recruiter_id", "does not resolve to a recruiter")
	}

	job := models.Job{
		ID:             newID("job"),
		Title:          draft.Title,
		Description:    draft.Description,
		RequiredSkills: append([]string(nil), draft.RequiredSkills...),
		Budget:         draft.Budget,
		Duration:       draft.Duration,
		Status:         models.JobOpen,
		RecruiterID:    draft.RecruiterID,
		Location:       draft.Location,
		CreatedAt:      s.now(),
	}
	s.jobs = append(s.jobs, job)
	return s.joinJob(job), nil
}

func (s *MemoryStore) ListApplicationsForJob(jobID string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, a := range s.applications {
		if a.JobID == jobID {
			out = append(out, s.joinApplication(a))
		}
	}
	return out, nil
}

func (s *MemoryStore) ListApplicationsForDeveloper(developerID string) ([]models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Application
	for _, a := range s.applications {
		if a.DeveloperID == developerID {
			out = append(out, s.joinApplication(a))
		}
	}
	return out, nil
}

func (s *MemoryStore) GetApplication(id string) (models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, _, ok := s.findApplication(id)
	if !ok {
		return models.Application{}, apperrors.ErrNotFound
	}
	return s.joinApplication(a), nil
}

func (s *MemoryStore) CreateApplication(draft models.ApplicationDraft) (models.Application, error) {
	if err := draft.Validate(); err != nil {
		return models.Application{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	job, _, ok := s.findJob(draft.JobID)
	if !ok {
		return models.Application{}, apperrors.ErrNotFound
	}
	if !job.IsOpen() {
		return models.Application{}, apperrors.ErrJobNotOpen
	}
	developer, ok := s.findUser(draft.DeveloperID)
	if !ok || !developer.IsDeveloper() {
		return models.Application{}, apperrors.Validation("developer_id", "does not resolve to a developer")
	}
	// One active (pending or accepted) application per (job, developer).
	// A developer rejected earlier may apply again.
	for _, a := range s.applications {
		if a.JobID == draft.JobID && a.DeveloperID == draft.DeveloperID && a.Status.Active() {
			return models.Application{}, apperrors.ErrDuplicateApplication
		}
	}

	app := models.Application{
		ID:          newID("app"),
		JobID:       draft.JobID,
		DeveloperID: draft.DeveloperID,
		Proposal:    draft.Proposal,
		Status:      models.ApplicationPending,
		CreatedAt:   s.now(),
	}
	s.applications = append(s.applications, app)
	return s.joinApplication(app), nil
}

func (s *MemoryStore) AcceptApplication(id string, rejectSiblings bool) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ai, ok := s.findApplication(id)
	if !ok {
		return models.Application{}, apperrors.ErrNotFound
	}
	if app.Status != models.ApplicationPending {
		return models.Application{}, apperrors.ErrInvalidTransition
	}
	job, ji, ok := s.findJob(app.JobID)
	if !ok {
		return models.Application{}, apperrors.ErrNotFound
	}
	// Acceptance is exclusive assignment: once a job left the open state it
	// already has its developer, so a second accept must not go through.
	if !job.IsOpen() {
		return models.Application{}, apperrors.ErrJobNotOpen
	}
	// At most one accepted application per job, even if the job record is
	// still marked open.
	for _, a := range s.applications {
		if a.JobID == job.ID && a.Status == models.ApplicationAccepted {
			return models.Application{}, apperrors.ErrInvalidTransition
		}
	}

	s.applications[ai].Status = models.ApplicationAccepted
	s.jobs[ji].Status = models.JobInProgress
	if rejectSiblings {
		for i, a := range s.applications {
			if a.JobID == job.ID && a.ID != id && a.Status == models.ApplicationPending {
				s.applications[i].Status = models.ApplicationRejected
			}
		}
	}
	return s.joinApplication(s.applications[ai]), nil
}

func (s *MemoryStore) RejectApplication(id string) (models.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ai, ok := s.findApplication(id)
	if !ok {
		return models.Application{}, apperrors.ErrNotFound
	}
	if app.Status != models.ApplicationPending {
		return models.Application{}, apperrors.ErrInvalidTransition
	}
	s.applications[ai].Status = models.ApplicationRejected
	return s.joinApplication(s.applications[ai]), nil
}

func (s *MemoryStore) CompleteJob(jobID string, rating int, comment string) (models.Payment, models.Review, error) {
	if !models.ValidRating(rating) {
		return models.Payment{}, models.Review{}, apperrors.Validation("rating", "must be between 1 and 5")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ji, ok := s.findJob(jobID)
	if !ok {
		return models.Payment{}, models.Review{}, apperrors.ErrNotFound
	}
	if !job.Status.CanTransition(models.JobCompleted) {
		return models.Payment{}, models.Review{}, apperrors.ErrInvalidTransition
	}
	var accepted *models.Application
	for i, a := range s.applications {
		if a.JobID == jobID && a.Status == models.ApplicationAccepted {
			accepted = &s.applications[i]
			break
		}
	}
	if accepted == nil {
		return models.Payment{}, models.Review{}, apperrors.ErrNoAcceptedApplication
	}

	// All checks passed; mutate in one step so payment and review either both
	// exist or neither does.
	now := s.now()
	payment := models.Payment{
		ID:          newID("pay"),
		JobID:       jobID,
		Amount:      job.Budget,
		Commission:  CommissionFor(job.Budget),
		Status:      models.PaymentCompleted,
		DeveloperID: accepted.DeveloperID,
		RecruiterID: job.RecruiterID,
		CreatedAt:   now,
	}
	review := models.Review{
		ID:         newID("rev"),
		FromUserID: job.RecruiterID,
		ToUserID:   accepted.DeveloperID,
		Rating:     rating,
		Comment:    comment,
		JobID:      jobID,
		CreatedAt:  now,
	}
	s.jobs[ji].Status = models.JobCompleted
	s.payments = append(s.payments, payment)
	s.reviews = append(s.reviews, review)
	return payment, review, nil
}

func (s *MemoryStore) CancelJob(jobID string) (models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ji, ok := s.findJob(jobID)
	if !ok {
		return models.Job{}, apperrors.ErrNotFound
	}
	if !job.Status.CanTransition(models.JobCanceled) {
		return models.Job{}, apperrors.ErrInvalidTransition
	}
	s.jobs[ji].Status = models.JobCanceled
	return s.joinJob(s.jobs[ji]), nil
}

func (s *MemoryStore) PaymentByJob(jobID string) (models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.payments {
		if p.JobID == jobID {
			return p, nil
		}
	}
	return models.Payment{}, apperrors.ErrNotFound
}

func (s *MemoryStore) ReviewsForUser(userID string) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.ToUserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) CompletedJobsByRecruiter(recruiterID string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Job
	for _, j := range s.jobs {
		if j.RecruiterID == recruiterID && j.Status == models.JobCompleted {
			out = append(out, s.joinJob(j))
		}
	}
	return out, nil
}

func (s *MemoryStore) CompletedJobsByDeveloper(developerID string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Job
	for _, a := range s.applications {
		if a.DeveloperID != developerID || a.Status != models.ApplicationAccepted {
			continue
		}
		if j, _, ok := s.findJob(a.JobID); ok && j.Status == models.JobCompleted {
			out = append(out, s.joinJob(j))
		}
	}
	return out, nil
}

func (s *MemoryStore) EarningsForDeveloper(developerID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		if p.DeveloperID == developerID && p.Status == models.PaymentCompleted {
			total += p.Amount - p.Commission
		}
	}
	return total, nil
}

func (s *MemoryStore) TotalCommission() (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.payments {
		if p.Status == models.PaymentCompleted {
			total += p.Commission
		}
	}
	return total, nil
}

// --- unexported helpers; callers must hold the lock ---

func (s *MemoryStore) findUser(id string) (models.User, bool) {
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *MemoryStore) findJob(id string) (models.Job, int, bool) {
	for i, j := range s.jobs {
		if j.ID == id {
			return j, i, true
		}
	}
	return models.Job{}, -1, false
}

func (s *MemoryStore) findApplication(id string) (models.Application, int, bool) {
	for i, a := range s.applications {
		if a.ID == id {
			return a, i, true
		}
	}
	return models.Application{}, -1, false
}

// joinJob returns a copy of the job with its recruiter and applications
// attached. Joins are computed per call, never stored denormalized.
func (s *MemoryStore) joinJob(j models.Job) models.Job {
	out := j
	out.RequiredSkills = append([]string(nil), j.RequiredSkills...)
	if u, ok := s.findUser(j.RecruiterID); ok {
		out.Recruiter = &u
	}
	out.Applications = nil
	for _, a := range s.applications {
		if a.JobID == j.ID {
			out.Applications = append(out.Applications, s.joinApplication(a))
		}
	}
	return out
}

func (s *MemoryStore) joinApplication(a models.Application) models.Application {
	out := a
	if u, ok := s.findUser(a.DeveloperID); ok {
		out.Developer = &u
	}
	return out
}
