package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
	"github.com/devmatch/devmatch-backend/internal/models"
)

// Record types kept separate from the domain structs so column layout can
// evolve without leaking gorm tags into the rest of the system.

type userRecord struct {
	ID         string `gorm:"primaryKey"`
	Name       string
	Email      string `gorm:"uniqueIndex"`
	Role       string
	Avatar     string
	Bio        string
	Skills     []string `gorm:"serializer:json"`
	Experience string
	HourlyRate float64
	Company    string
	Location   string
	CreatedAt  time.Time
}

func (userRecord) TableName() string { return "users" }

type jobRecord struct {
	ID             string `gorm:"primaryKey"`
	Title          string
	Description    string   `gorm:"type:text"`
	RequiredSkills []string `gorm:"serializer:json"`
	Budget         float64
	Duration       string
	Status         string `gorm:"index"`
	RecruiterID    string `gorm:"index"`
	Location       string
	CreatedAt      time.Time
}

func (jobRecord) TableName() string { return "jobs" }

type applicationRecord struct {
	ID          string `gorm:"primaryKey"`
	JobID       string `gorm:"index"`
	DeveloperID string `gorm:"index"`
	Proposal    string `gorm:"type:text"`
	Status      string
	CreatedAt   time.Time
}

func (applicationRecord) TableName() string { return "applications" }

type paymentRecord struct {
	ID          string `gorm:"primaryKey"`
	JobID       string `gorm:"index"`
	Amount      float64
	Commission  float64
	Status      string
	DeveloperID string `gorm:"index"`
	RecruiterID string
	CreatedAt   time.Time
}

func (paymentRecord) TableName() string { return "payments" }

type reviewRecord struct {
	ID         string `gorm:"primaryKey"`
	FromUserID string
	ToUserID   string `gorm:"index"`
	Rating     int
	Comment    string `gorm:"type:text"`
	JobID      string `gorm:"index"`
	CreatedAt  time.Time
}

func (reviewRecord) TableName() string { return "reviews" }

// GormStore implements Store on a relational database. It is selected when
// DATABASE_URL is configured; the MemoryStore stays the default.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(
		&userRecord{}, &jobRecord{}, &applicationRecord{},
		&paymentRecord{}, &reviewRecord{},
	)
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db, now: time.Now}, nil
}

func (s *GormStore) ListUsers() ([]models.User, error) {
	var recs []userRecord
	if err := s.db.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *GormStore) GetUser(id string) (models.User, error) {
	var rec userRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return models.User{}, notFoundOr(err)
	}
	return rec.toDomain(), nil
}

func (s *GormStore) ListJobs() ([]models.Job, error) {
	var recs []jobRecord
	if err := s.db.Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return s.joinJobs(s.db, recs)
}

func (s *GormStore) GetJob(id string) (models.Job, error) {
	var rec jobRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return models.Job{}, notFoundOr(err)
	}
	jobs, err := s.joinJobs(s.db, []jobRecord{rec})
	if err != nil {
		return models.Job{}, err
	}
	return jobs[0], nil
}

func (s *GormStore) JobsByRecruiter(recruiterID string) ([]models.Job, error) {
	var recs []jobRecord
	if err := s.db.Where("recruiter_id = ?", recruiterID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return s.joinJobs(s.db, recs)
}

func (s *GormStore) CreateJob(draft models.JobDraft) (models.Job, error) {
	if err := draft.Validate(); err != nil {
		return models.Job{}, err
	}
	var recruiter userRecord
	if err := s.db.First(&recruiter, "id = ?", draft.RecruiterID).Error; err != nil || recruiter.Role != string(models.RoleRecruiter) {
		return models.Job{}, apperrors.Validation("recruiter_id", "does not resolve to a recruiter")
	}
	rec := jobRecord{
		ID:             newID("job"),
		Title:          draft.Title,
		Description:    draft.Description,
		RequiredSkills: draft.RequiredSkills,
		Budget:         draft.Budget,
		Duration:       draft.Duration,
		Status:         string(models.JobOpen),
		RecruiterID:    draft.RecruiterID,
		Location:       draft.Location,
		CreatedAt:      s.now(),
	}
	if err := s.db.Create(&rec).Error; err != nil {
		return models.Job{}, err
	}
	return s.GetJob(rec.ID)
}

func (s *GormStore) ListApplicationsForJob(jobID string) ([]models.Application, error) {
	var recs []applicationRecord
	if err := s.db.Where("job_id = ?", jobID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return s.joinApplications(s.db, recs)
}

func (s *GormStore) ListApplicationsForDeveloper(developerID string) ([]models.Application, error) {
	var recs []applicationRecord
	if err := s.db.Where("developer_id = ?", developerID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	return s.joinApplications(s.db, recs)
}

func (s *GormStore) GetApplication(id string) (models.Application, error) {
	var rec applicationRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return models.Application{}, notFoundOr(err)
	}
	apps, err := s.joinApplications(s.db, []applicationRecord{rec})
	if err != nil {
		return models.Application{}, err
	}
	return apps[0], nil
}

func (s *GormStore) CreateApplication(draft models.ApplicationDraft) (models.Application, error) {
	if err := draft.Validate(); err != nil {
		return models.Application{}, err
	}
	var created applicationRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job jobRecord
		if err := tx.First(&job, "id = ?", draft.JobID).Error; err != nil {
			return notFoundOr(err)
		}
		if job.Status != string(models.JobOpen) {
			return apperrors.ErrJobNotOpen
		}
		var dev userRecord
		if err := tx.First(&dev, "id = ?", draft.DeveloperID).Error; err != nil || dev.Role != string(models.RoleDeveloper) {
			return apperrors.Validation("developer_id", "does not resolve to a developer")
		}
		var active int64
		err := tx.Model(&applicationRecord{}).
			Where("job_id = ? AND developer_id = ? AND status IN ?",
				draft.JobID, draft.DeveloperID,
				[]string{string(models.ApplicationPending), string(models.ApplicationAccepted)}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return apperrors.ErrDuplicateApplication
		}
		created = applicationRecord{
			ID:          newID("app"),
			JobID:       draft.JobID,
			DeveloperID: draft.DeveloperID,
			Proposal:    draft.Proposal,
			Status:      string(models.ApplicationPending),
			CreatedAt:   s.now(),
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return models.Application{}, err
	}
	return s.GetApplication(created.ID)
}

func (s *GormStore) AcceptApplication(id string, rejectSiblings bool) (models.Application, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app applicationRecord
		if err := tx.First(&app, "id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if app.Status != string(models.ApplicationPending) {
			return apperrors.ErrInvalidTransition
		}
		var job jobRecord
		if err := tx.First(&job, "id = ?", app.JobID).Error; err != nil {
			return notFoundOr(err)
		}
		if job.Status != string(models.JobOpen) {
			return apperrors.ErrJobNotOpen
		}
		var accepted int64
		err := tx.Model(&applicationRecord{}).
			Where("job_id = ? AND status = ?", job.ID, string(models.ApplicationAccepted)).
			Count(&accepted).Error
		if err != nil {
			return err
		}
		if accepted > 0 {
			return apperrors.ErrInvalidTransition
		}
		if err := tx.Model(&applicationRecord{}).Where("id = ?", id).
			Update("status", string(models.ApplicationAccepted)).Error; err != nil {
			return err
		}
		if err := tx.Model(&jobRecord{}).Where("id = ?", job.ID).
			Update("status", string(models.JobInProgress)).Error; err != nil {
			return err
		}
		if rejectSiblings {
			return tx.Model(&applicationRecord{}).
				Where("job_id = ? AND id <> ? AND status = ?", job.ID, id, string(models.ApplicationPending)).
				Update("status", string(models.ApplicationRejected)).Error
		}
		return nil
	})
	if err != nil {
		return models.Application{}, err
	}
	return s.GetApplication(id)
}

func (s *GormStore) RejectApplication(id string) (models.Application, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app applicationRecord
		if err := tx.First(&app, "id = ?", id).Error; err != nil {
			return notFoundOr(err)
		}
		if app.Status != string(models.ApplicationPending) {
			return apperrors.ErrInvalidTransition
		}
		return tx.Model(&applicationRecord{}).Where("id = ?", id).
			Update("status", string(models.ApplicationRejected)).Error
	})
	if err != nil {
		return models.Application{}, err
	}
	return s.GetApplication(id)
}

func (s *GormStore) CompleteJob(jobID string, rating int, comment string) (models.Payment, models.Review, error) {
	if !models.ValidRating(rating) {
		return models.Payment{}, models.Review{}, apperrors.Validation("rating", "must be between 1 and 5")
	}
	var payment paymentRecord
	var review reviewRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job jobRecord
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return notFoundOr(err)
		}
		if !models.JobStatus(job.Status).CanTransition(models.JobCompleted) {
			return apperrors.ErrInvalidTransition
		}
		var accepted applicationRecord
		err := tx.First(&accepted, "job_id = ? AND status = ?", jobID, string(models.ApplicationAccepted)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoAcceptedApplication
		}
		if err != nil {
			return err
		}
		now := s.now()
		payment = paymentRecord{
			ID:          newID("pay"),
			JobID:       jobID,
			Amount:      job.Budget,
			Commission:  CommissionFor(job.Budget),
			Status:      string(models.PaymentCompleted),
			DeveloperID: accepted.DeveloperID,
			RecruiterID: job.RecruiterID,
			CreatedAt:   now,
		}
		review = reviewRecord{
			ID:         newID("rev"),
			FromUserID: job.RecruiterID,
			ToUserID:   accepted.DeveloperID,
			Rating:     rating,
			Comment:    comment,
			JobID:      jobID,
			CreatedAt:  now,
		}
		if err := tx.Model(&jobRecord{}).Where("id = ?", jobID).
			Update("status", string(models.JobCompleted)).Error; err != nil {
			return err
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Create(&review).Error
	})
	if err != nil {
		return models.Payment{}, models.Review{}, err
	}
	return payment.toDomain(), review.toDomain(), nil
}

func (s *GormStore) CancelJob(jobID string) (models.Job, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job jobRecord
		if err := tx.First(&job, "id = ?", jobID).Error; err != nil {
			return notFoundOr(err)
		}
		if !models.JobStatus(job.Status).CanTransition(models.JobCanceled) {
			return apperrors.ErrInvalidTransition
		}
		return tx.Model(&jobRecord{}).Where("id = ?", jobID).
			Update("status", string(models.JobCanceled)).Error
	})
	if err != nil {
		return models.Job{}, err
	}
	return s.GetJob(jobID)
}

func (s *GormStore) PaymentByJob(jobID string) (models.Payment, error) {
	var rec paymentRecord
	if err := s.db.First(&rec, "job_id = ?", jobID).Error; err != nil {
		return models.Payment{}, notFoundOr(err)
	}
	return rec.toDomain(), nil
}

func (s *GormStore) ReviewsForUser(userID string) ([]models.Review, error) {
	var recs []reviewRecord
	if err := s.db.Where("to_user_id = ?", userID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]models.Review, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *GormStore) CompletedJobsByRecruiter(recruiterID string) ([]models.Job, error) {
	var recs []jobRecord
	err := s.db.Where("recruiter_id = ? AND status = ?", recruiterID, string(models.JobCompleted)).
		Order("created_at").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return s.joinJobs(s.db, recs)
}

func (s *GormStore) CompletedJobsByDeveloper(developerID string) ([]models.Job, error) {
	var recs []jobRecord
	err := s.db.
		Joins("JOIN applications ON applications.job_id = jobs.id").
		Where("applications.developer_id = ? AND applications.status = ? AND jobs.status = ?",
			developerID, string(models.ApplicationAccepted), string(models.JobCompleted)).
		Order("jobs.created_at").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return s.joinJobs(s.db, recs)
}

func (s *GormStore) EarningsForDeveloper(developerID string) (float64, error) {
	var recs []paymentRecord
	err := s.db.Where("developer_id = ? AND status = ?", developerID, string(models.PaymentCompleted)).
		Find(&recs).Error
	if err != nil {
		return 0, err
	}
	var total float64
	for _, p := range recs {
		total += p.Amount - p.Commission
	}
	return total, nil
}

func (s *GormStore) TotalCommission() (float64, error) {
	var recs []paymentRecord
	if err := s.db.Where("status = ?", string(models.PaymentCompleted)).Find(&recs).Error; err != nil {
		return 0, err
	}
	var total float64
	for _, p := range recs {
		total += p.Commission
	}
	return total, nil
}

// --- joins and record mapping ---

func (s *GormStore) joinJobs(db *gorm.DB, recs []jobRecord) ([]models.Job, error) {
	out := make([]models.Job, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(recs))
	recruiterIDs := make([]string, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
		recruiterIDs = append(recruiterIDs, r.RecruiterID)
	}
	var recruiters []userRecord
	if err := db.Where("id IN ?", recruiterIDs).Find(&recruiters).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]userRecord, len(recruiters))
	for _, u := range recruiters {
		byID[u.ID] = u
	}
	var apps []applicationRecord
	if err := db.Where("job_id IN ?", ids).Order("created_at").Find(&apps).Error; err != nil {
		return nil, err
	}
	joined, err := s.joinApplications(db, apps)
	if err != nil {
		return nil, err
	}
	byJob := make(map[string][]models.Application)
	for _, a := range joined {
		byJob[a.JobID] = append(byJob[a.JobID], a)
	}
	for _, r := range recs {
		j := r.toDomain()
		if u, ok := byID[r.RecruiterID]; ok {
			du := u.toDomain()
			j.Recruiter = &du
		}
		j.Applications = byJob[r.ID]
		out = append(out, j)
	}
	return out, nil
}

func (s *GormStore) joinApplications(db *gorm.DB, recs []applicationRecord) ([]models.Application, error) {
	out := make([]models.Application, 0, len(recs))
	if len(recs) == 0 {
		return out, nil
	}
	devIDs := make([]string, 0, len(recs))
	for _, r := range recs {
		devIDs = append(devIDs, r.DeveloperID)
	}
	var devs []userRecord
	if err := db.Where("id IN ?", devIDs).Find(&devs).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]userRecord, len(devs))
	for _, u := range devs {
		byID[u.ID] = u
	}
	for _, r := range recs {
		a := r.toDomain()
		if u, ok := byID[r.DeveloperID]; ok {
			du := u.toDomain()
			a.Developer = &du
		}
		out = append(out, a)
	}
	return out, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r userRecord) toDomain() models.User {
	return models.User{
		ID: r.ID, Name: r.Name, Email: r.Email, Role: models.UserRole(r.Role),
		Avatar: r.Avatar, Bio: r.Bio, Skills: r.Skills, Experience: r.Experience,
		HourlyRate: r.HourlyRate, Company: r.Company, Location: r.Location,
		CreatedAt: r.CreatedAt,
	}
}

func (r jobRecord) toDomain() models.Job {
	return models.Job{
		ID: r.ID, Title: r.Title, Description: r.Description,
		RequiredSkills: r.RequiredSkills, Budget: r.Budget, Duration: r.Duration,
		Status: models.JobStatus(r.Status), RecruiterID: r.RecruiterID,
		Location: r.Location, CreatedAt: r.CreatedAt,
	}
}

func (r applicationRecord) toDomain() models.Application {
	return models.Application{
		ID: r.ID, JobID: r.JobID, DeveloperID: r.DeveloperID, Proposal: r.Proposal,
		Status: models.ApplicationStatus(r.Status), CreatedAt: r.CreatedAt,
	}
}

func (r paymentRecord) toDomain() models.Payment {
	return models.Payment{
		ID: r.ID, JobID: r.JobID, Amount: r.Amount, Commission: r.Commission,
		Status: models.PaymentStatus(r.Status), DeveloperID: r.DeveloperID,
		RecruiterID: r.RecruiterID, CreatedAt: r.CreatedAt,
	}
}

func (r reviewRecord) toDomain() models.Review {
	return models.Review{
		ID: r.ID, FromUserID: r.FromUserID, ToUserID: r.ToUserID, Rating: r.Rating,
		Comment: r.Comment, JobID: r.JobID, CreatedAt: r.CreatedAt,
	}
}
