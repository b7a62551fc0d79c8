package models

import (
	"strings"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
)

// JobDraft is the input for posting a job. The store assigns id, createdAt
// and the initial open status.
type JobDraft struct {
	Title          string
	Description    string
	RequiredSkills []string
	Budget         float64
	Duration       string
	RecruiterID    string
	Location       string
}

// Validate checks the structural rules that do not need a store lookup.
// Whether RecruiterID resolves to an actual recruiter is checked by the store.
func (d JobDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return apperrors.Validation("title", "must not be empty")
	}
	if strings.TrimSpace(d.Description) == "" {
		return apperrors.Validation("description", "must not be empty")
	}
	if len(d.RequiredSkills) == 0 {
		return apperrors.Validation("required_skills", "at least one skill is required")
	}
	if d.Budget < 0 {
		return apperrors.Validation("budget", "must not be negative")
	}
	if strings.TrimSpace(d.RecruiterID) == "" {
		return apperrors.Validation("recruiter_id", "must not be empty")
	}
	return nil
}

// ApplicationDraft is the input for applying to a job. Status always starts
// out pending.
type ApplicationDraft struct {
	JobID       string
	DeveloperID string
	Proposal    string
}

func (d ApplicationDraft) Validate() error {
	if strings.TrimSpace(d.JobID) == "" {
		return apperrors.Validation("job_id", "must not be empty")
	}
	if strings.TrimSpace(d.DeveloperID) == "" {
		return apperrors.Validation("developer_id", "must not be empty")
	}
	if strings.TrimSpace(d.Proposal) == "" {
		return apperrors.Validation("proposal", "must not be empty")
	}
	return nil
}
