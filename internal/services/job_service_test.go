package services

import (
	"errors"
	"math"
	"testing"

	"github.com/devmatch/devmatch-backend/internal/apperrors"
	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/models"
)

var (
	recruiter1 = auth.Identity{UserID: "r1", Role: models.RoleRecruiter}
	recruiter2 = auth.Identity{UserID: "r2", Role: models.RoleRecruiter}
	developer1 = auth.Identity{UserID: "d1", Role: models.RoleDeveloper}
	developer2 = auth.Identity{UserID: "d2", Role: models.RoleDeveloper}
	platformOp = auth.Identity{UserID: "admin", Role: models.RoleAdmin}
)

func newJobService(t *testing.T) *JobService {
	t.Helper()
	return NewJobService(seededStore(), quietLogger(), false)
}

func TestPostJob(t *testing.T) {
	draft := models.JobDraft{
		Title:          "Go Developer",
		Description:    "Backend work",
		RequiredSkills: []string{"Go"},
		Budget:         2500,
	}

	t.Run("recruiter posts and owns the job", func(t *testing.T) {
		svc := newJobService(t)
		job, err := svc.PostJob(recruiter1, draft)
		if err != nil {
			t.Fatal(err)
		}
		if job.RecruiterID != "r1" {
			t.Errorf("recruiter id = %s, want r1", job.RecruiterID)
		}
	})

	t.Run("developer may not post", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.PostJob(developer1, draft); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner cannot be spoofed via the draft", func(t *testing.T) {
		svc := newJobService(t)
		d := draft
		d.RecruiterID = "r2"
		job, err := svc.PostJob(recruiter1, d)
		if err != nil {
			t.Fatal(err)
		}
		if job.RecruiterID != "r1" {
			t.Errorf("recruiter id = %s, want acting user r1", job.RecruiterID)
		}
	})
}

func TestApply(t *testing.T) {
	t.Run("developer applies", func(t *testing.T) {
		svc := newJobService(t)
		app, err := svc.Apply(developer2, "j1", "Happy to help.")
		if err != nil {
			t.Fatal(err)
		}
		if app.DeveloperID != "d2" || app.Status != models.ApplicationPending {
			t.Errorf("application wrong: %+v", app)
		}
	})

	t.Run("recruiter may not apply", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.Apply(recruiter1, "j1", "hire me"); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("duplicate surfaces to the caller", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.Apply(developer1, "j1", "again"); !errors.Is(err, apperrors.ErrDuplicateApplication) {
			t.Errorf("expected ErrDuplicateApplication, got %v", err)
		}
	})
}

func TestAcceptAuthorization(t *testing.T) {
	t.Run("owning recruiter accepts", func(t *testing.T) {
		svc := newJobService(t)
		app, err := svc.Accept(recruiter1, "a1")
		if err != nil {
			t.Fatal(err)
		}
		if app.Status != models.ApplicationAccepted {
			t.Errorf("status = %s, want accepted", app.Status)
		}
		job, _ := svc.Job("j1")
		if job.Status != models.JobInProgress {
			t.Errorf("job status = %s, want in_progress", job.Status)
		}
	})

	t.Run("other recruiter may not accept", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.Accept(recruiter2, "a1"); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("developer may not accept", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.Accept(developer1, "a1"); !errors.Is(err, apperrors.ErrForbidden) {
			t.Errorf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("admin may accept", func(t *testing.T) {
		svc := newJobService(t)
		if _, err := svc.Accept(platformOp, "a1"); err != nil {
			t.Errorf("admin accept failed: %v", err)
		}
	})
}

func TestRejectSiblingsPolicy(t *testing.T) {
	st := seededStore()
	svc := NewJobService(st, quietLogger(), true)

	if _, err := svc.Apply(developer2, "j1", "me too"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Accept(recruiter1, "a1"); err != nil {
		t.Fatal(err)
	}
	apps, err := st.ListApplicationsForJob("j1")
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range apps {
		if a.ID == "a1" && a.Status != models.ApplicationAccepted {
			t.Errorf("a1 = %s, want accepted", a.Status)
		}
		if a.ID != "a1" && a.Status != models.ApplicationRejected {
			t.Errorf("sibling %s = %s, want rejected", a.ID, a.Status)
		}
	}
}

func TestCompleteLifecycle(t *testing.T) {
	svc := newJobService(t)

	if _, err := svc.Accept(recruiter1, "a1"); err != nil {
		t.Fatal(err)
	}
	payment, review, err := svc.Complete(recruiter1, "j1", 5, "great work")
	if err != nil {
		t.Fatal(err)
	}
	if payment.Amount != 5000 || payment.Commission != 500 {
		t.Errorf("payment %v/%v, want 5000/500", payment.Amount, payment.Commission)
	}
	if review.ToUserID != "d1" {
		t.Errorf("review target = %s, want d1", review.ToUserID)
	}

	earned, err := svc.Earnings(developer1)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(earned-4500) > 1e-9 {
		t.Errorf("earnings = %v, want 4500", earned)
	}

	jobs, err := svc.CompletedJobs(developer1)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 1 || jobs[0].ID != "j1" {
		t.Errorf("developer completed jobs wrong: %+v", jobs)
	}
}

func TestCompleteAuthorization(t *testing.T) {
	svc := newJobService(t)
	if _, _, err := svc.Complete(recruiter2, "j1", 5, "not mine"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestCancelAuthorization(t *testing.T) {
	svc := newJobService(t)
	if _, err := svc.Cancel(recruiter2, "j1"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	job, err := svc.Cancel(recruiter1, "j1")
	if err != nil {
		t.Fatal(err)
	}
	if job.Status != models.JobCanceled {
		t.Errorf("status = %s, want canceled", job.Status)
	}
}

func TestApplicationsForJobOwnership(t *testing.T) {
	svc := newJobService(t)
	apps, err := svc.ApplicationsForJob(recruiter1, "j1")
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 1 {
		t.Errorf("got %d applications, want 1", len(apps))
	}
	if _, err := svc.ApplicationsForJob(recruiter2, "j1"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestRoleScopedViews(t *testing.T) {
	svc := newJobService(t)

	jobs, err := svc.JobsForRecruiter(recruiter1)
	if err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 3 {
		t.Errorf("r1 jobs = %d, want 3", len(jobs))
	}
	if _, err := svc.JobsForRecruiter(developer1); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	apps, err := svc.ApplicationsForDeveloper(developer1)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Errorf("d1 applications = %d, want 2", len(apps))
	}
	if _, err := svc.Earnings(recruiter1); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestPlatformCommission(t *testing.T) {
	svc := newJobService(t)
	total, err := svc.PlatformCommission(platformOp)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(total-475) > 1e-9 {
		t.Errorf("commission = %v, want 475", total)
	}
	if _, err := svc.PlatformCommission(recruiter1); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc := newJobService(t)
	user, reviews, err := svc.Profile("d2")
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "Mike Coder" {
		t.Errorf("user = %s", user.Name)
	}
	if len(reviews) != 1 || reviews[0].Rating != 5 {
		t.Errorf("reviews wrong: %+v", reviews)
	}
	if _, _, err := svc.Profile("nobody"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
