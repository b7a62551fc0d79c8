package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	supabase "github.com/nedpals/supabase-go"
	"github.com/sirupsen/logrus"

	"github.com/devmatch/devmatch-backend/internal/models"
	"github.com/devmatch/devmatch-backend/internal/store"
)

// DataSource tags which side of the dual-source read served a job list.
type DataSource string

const (
	SourceLive     DataSource = "live"
	SourceFallback DataSource = "fallback"
)

// JobsResult is the reconciliation outcome. Callers always get a usable job
// list; Source and Reason say where it came from, so a degraded read is
// visible without surfacing an error.
type JobsResult struct {
	Jobs   []models.Job
	Source DataSource
	Reason string
}

// RemoteJobRow is the raw shape the remote source returns for a job,
// recruiter embedded.
type RemoteJobRow struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	RequiredSkills []string            `json:"required_skills"`
	Budget         float64             `json:"budget"`
	Duration       *string             `json:"duration"`
	Status         string              `json:"status"`
	RecruiterID    string              `json:"recruiter_id"`
	Location       *string             `json:"location"`
	CreatedAt      string              `json:"created_at"`
	Recruiter      *RemoteRecruiterRow `json:"recruiter"`
}

type RemoteRecruiterRow struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Location  string `json:"location"`
}

// RemoteJobsQuerier is the slice of the remote source the reconciliation
// layer consumes. The Supabase client satisfies it in production; tests plug
// in fakes.
type RemoteJobsQuerier interface {
	OpenJobs(ctx context.Context) ([]RemoteJobRow, error)
}

// SupabaseJobsQuerier queries the hosted backend for open jobs joined with
// their recruiter identity fields.
type SupabaseJobsQuerier struct {
	client *supabase.Client
}

func NewSupabaseJobsQuerier(supabaseURL, supabaseKey string) *SupabaseJobsQuerier {
	return &SupabaseJobsQuerier{client: supabase.CreateClient(supabaseURL, supabaseKey)}
}

func (q *SupabaseJobsQuerier) OpenJobs(ctx context.Context) ([]RemoteJobRow, error) {
	var rows []RemoteJobRow
	err := q.client.DB.From("jobs").
		Select("*, recruiter:recruiter_id(id, first_name, last_name, email, role, company, location)").
		Eq("status", string(models.JobOpen)).
		Execute(&rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// RemoteService decides, per read, between live remote data and the local
// store. Remote failures never propagate: any transport or shape problem
// degrades to the locally held open jobs.
type RemoteService struct {
	querier RemoteJobsQuerier
	store   store.Store
	log     *logrus.Logger
}

func NewRemoteService(querier RemoteJobsQuerier, st store.Store, log *logrus.Logger) *RemoteService {
	return &RemoteService{querier: querier, store: st, log: log}
}

// LoadJobs returns the open jobs, newest first, preferring the live source.
func (s *RemoteService) LoadJobs(ctx context.Context) JobsResult {
	if s.querier == nil {
		return s.fallback("remote source not configured")
	}
	rows, err := s.querier.OpenJobs(ctx)
	if err != nil {
		return s.fallback(fmt.Sprintf("remote query failed: %v", err))
	}
	jobs := make([]models.Job, 0, len(rows))
	for _, row := range rows {
		job, err := transformRemoteJob(row)
		if err != nil {
			s.log.WithError(err).WithField("job_id", row.ID).Warn("dropping malformed remote job row")
			continue
		}
		if row.Recruiter != nil && job.Recruiter == nil {
			s.log.WithFields(logrus.Fields{
				"job_id": row.ID, "role": row.Recruiter.Role,
			}).Warn("unrecognized recruiter role on remote row")
		}
		jobs = append(jobs, job)
	}
	if len(jobs) == 0 {
		return s.fallback("remote returned no usable rows")
	}
	return JobsResult{
		Jobs:   FilterAndSortJobs(jobs, JobQuery{SortOrder: SortNewest}),
		Source: SourceLive,
	}
}

// LoadFeaturedJobs returns at most limit open jobs, newest first.
func (s *RemoteService) LoadFeaturedJobs(ctx context.Context, limit int) JobsResult {
	res := s.LoadJobs(ctx)
	if limit >= 0 && len(res.Jobs) > limit {
		res.Jobs = res.Jobs[:limit]
	}
	return res
}

func (s *RemoteService) fallback(reason string) JobsResult {
	s.log.WithField("reason", reason).Info("serving jobs from local fallback")
	all, err := s.store.ListJobs()
	if err != nil {
		// The memory store cannot fail here; a database-backed store might.
		// Degrading to an empty list keeps the contract of always answering.
		s.log.WithError(err).Error("fallback store read failed")
		return JobsResult{Jobs: []models.Job{}, Source: SourceFallback, Reason: reason}
	}
	var open []models.Job
	for _, j := range all {
		if j.IsOpen() {
			open = append(open, j)
		}
	}
	return JobsResult{
		Jobs:   FilterAndSortJobs(open, JobQuery{SortOrder: SortNewest}),
		Source: SourceFallback,
		Reason: reason,
	}
}

// transformRemoteJob maps a snake_case remote row into the domain shape.
// Rows with an unusable status or timestamp are rejected; an unrecognized
// recruiter role drops the join but keeps the job.
func transformRemoteJob(row RemoteJobRow) (models.Job, error) {
	status := models.JobStatus(row.Status)
	if !status.Valid() {
		return models.Job{}, fmt.Errorf("unknown job status %q", row.Status)
	}
	createdAt, err := parseRemoteTime(row.CreatedAt)
	if err != nil {
		return models.Job{}, fmt.Errorf("bad created_at %q: %w", row.CreatedAt, err)
	}

	job := models.Job{
		ID:             row.ID,
		Title:          row.Title,
		Description:    row.Description,
		RequiredSkills: row.RequiredSkills,
		Budget:         row.Budget,
		Status:         status,
		RecruiterID:    row.RecruiterID,
		CreatedAt:      createdAt,
	}
	if job.RequiredSkills == nil {
		job.RequiredSkills = []string{}
	}
	if row.Duration != nil {
		job.Duration = *row.Duration
	}
	if row.Location != nil {
		job.Location = *row.Location
	}
	if r := row.Recruiter; r != nil {
		if role, ok := models.ParseUserRole(r.Role); ok && role == models.RoleRecruiter {
			job.Recruiter = &models.User{
				ID:       r.ID,
				Name:     strings.TrimSpace(r.FirstName + " " + r.LastName),
				Email:    r.Email,
				Role:     role,
				Company:  r.Company,
				Location: r.Location,
			}
		}
		// An unknown role string is not passed through; the job survives
		// without the join.
	}
	return job, nil
}

func parseRemoteTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Postgres timestamps without a zone suffix.
	return time.Parse("2006-01-02T15:04:05.999999", s)
}
