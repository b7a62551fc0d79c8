package models

import (
	"strings"
	"time"
)

// UserRole is the role a user acts under. Roles are fixed at registration;
// there is no role-change operation.
type UserRole string

const (
	RoleRecruiter UserRole = "recruiter"
	RoleDeveloper UserRole = "developer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleRecruiter, RoleDeveloper, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole narrows a raw role string (e.g. from a remote row) into a
// UserRole. Unknown values are rejected rather than passed through.
func ParseUserRole(s string) (UserRole, bool) {
	r := UserRole(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

type JobStatus string

const (
	JobOpen       JobStatus = "open"
	JobInProgress JobStatus = "in_progress"
	JobCompleted  JobStatus = "completed"
	JobCanceled   JobStatus = "canceled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobOpen, JobInProgress, JobCompleted, JobCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this status.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobCanceled
}

// CanTransition is the job state machine: open -> in_progress -> completed,
// with canceled reachable from open or in_progress only.
func (s JobStatus) CanTransition(to JobStatus) bool {
	switch s {
	case JobOpen:
		return to == JobInProgress || to == JobCanceled
	case JobInProgress:
		return to == JobCompleted || to == JobCanceled
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationAccepted, ApplicationRejected:
		return true
	}
	return false
}

// Active reports whether the application still counts against the
// one-active-application-per-job-and-developer rule.
func (s ApplicationStatus) Active() bool {
	return s == ApplicationPending || s == ApplicationAccepted
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Skills    []string  `json:"skills,omitempty"`
	Experience string   `json:"experience,omitempty"`
	HourlyRate float64  `json:"hourly_rate,omitempty"`
	Company   string    `json:"company,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) IsRecruiter() bool { return u.Role == RoleRecruiter }
func (u User) IsDeveloper() bool { return u.Role == RoleDeveloper }

type Job struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	RequiredSkills []string      `json:"required_skills"`
	Budget         float64       `json:"budget"`
	Duration       string        `json:"duration,omitempty"`
	Status         JobStatus     `json:"status"`
	RecruiterID    string        `json:"recruiter_id"`
	Location       string        `json:"location,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`

	// Joined by the store, never persisted denormalized.
	Recruiter    *User         `json:"recruiter,omitempty"`
	Applications []Application `json:"applications,omitempty"`
}

func (j Job) IsOpen() bool { return j.Status == JobOpen }

type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	DeveloperID string            `json:"developer_id"`
	Proposal    string            `json:"proposal"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`

	// Joined by the store.
	Developer *User `json:"developer,omitempty"`
}

type Payment struct {
	ID          string        `json:"id"`
	JobID       string        `json:"job_id"`
	Amount      float64       `json:"amount"`
	Commission  float64       `json:"commission"`
	Status      PaymentStatus `json:"status"`
	DeveloperID string        `json:"developer_id"`
	RecruiterID string        `json:"recruiter_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Review struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	JobID      string    `json:"job_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Message is carried on the domain for the collaboration surface; the
// messaging endpoints themselves are not part of this backend yet.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// ValidRating reports whether a review rating is in the accepted 1-5 range.
func ValidRating(r int) bool { return r >= 1 && r <= 5 }
