package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/devmatch/devmatch-backend/internal/models"
	"github.com/devmatch/devmatch-backend/internal/store"
)

type fakeQuerier struct {
	rows []RemoteJobRow
	err  error
}

func (f *fakeQuerier) OpenJobs(ctx context.Context) ([]RemoteJobRow, error) {
	return f.rows, f.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seededStore() *store.MemoryStore {
	s := store.NewMemoryStore()
	s.SeedSampleData()
	return s
}

func strptr(s string) *string { return &s }

func liveRow(id, title, created string) RemoteJobRow {
	return RemoteJobRow{
		ID:             id,
		Title:          title,
		Description:    "remote description",
		RequiredSkills: []string{"Go"},
		Budget:         1200,
		Duration:       strptr("1 month"),
		Status:         "open",
		RecruiterID:    "remote-r1",
		Location:       strptr("Remote"),
		CreatedAt:      created,
		Recruiter: &RemoteRecruiterRow{
			ID: "remote-r1", FirstName: "Ada", LastName: "Lovelace",
			Email: "ada@example.com", Role: "recruiter", Company: "Analytical",
		},
	}
}

func TestLoadJobsLive(t *testing.T) {
	q := &fakeQuerier{rows: []RemoteJobRow{
		liveRow("rj1", "Older", "2025-05-01T10:00:00Z"),
		liveRow("rj2", "Newer", "2025-05-10T10:00:00Z"),
	}}
	svc := NewRemoteService(q, seededStore(), quietLogger())

	res := svc.LoadJobs(context.Background())
	if res.Source != SourceLive {
		t.Fatalf("source = %s, want live", res.Source)
	}
	if len(res.Jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(res.Jobs))
	}
	if res.Jobs[0].ID != "rj2" || res.Jobs[1].ID != "rj1" {
		t.Errorf("jobs not newest-first: %s, %s", res.Jobs[0].ID, res.Jobs[1].ID)
	}

	job := res.Jobs[1]
	if job.Title != "Older" || job.Duration != "1 month" || job.Location != "Remote" {
		t.Errorf("field mapping wrong: %+v", job)
	}
	if job.Status != models.JobOpen {
		t.Errorf("status = %s, want open", job.Status)
	}
	if job.Recruiter == nil {
		t.Fatal("recruiter join missing")
	}
	if job.Recruiter.Name != "Ada Lovelace" || job.Recruiter.Role != models.RoleRecruiter {
		t.Errorf("recruiter mapping wrong: %+v", job.Recruiter)
	}
}

func TestLoadJobsFallsBackOnError(t *testing.T) {
	q := &fakeQuerier{err: errors.New("connection refused")}
	svc := NewRemoteService(q, seededStore(), quietLogger())

	res := svc.LoadJobs(context.Background())
	if res.Source != SourceFallback {
		t.Fatalf("source = %s, want fallback", res.Source)
	}
	if res.Reason == "" {
		t.Error("fallback reason must be recorded")
	}
	// The seeded dataset has exactly three open jobs.
	if len(res.Jobs) != 3 {
		t.Fatalf("got %d jobs, want 3", len(res.Jobs))
	}
	for _, j := range res.Jobs {
		if !j.IsOpen() {
			t.Errorf("fallback included non-open job %s (%s)", j.ID, j.Status)
		}
	}
	if res.Jobs[0].ID != "j3" || res.Jobs[2].ID != "j1" {
		t.Errorf("fallback not newest-first: %v", []string{res.Jobs[0].ID, res.Jobs[1].ID, res.Jobs[2].ID})
	}
}

func TestLoadJobsFallsBackOnEmptyResult(t *testing.T) {
	svc := NewRemoteService(&fakeQuerier{}, seededStore(), quietLogger())
	res := svc.LoadJobs(context.Background())
	if res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback", res.Source)
	}
}

func TestLoadJobsWithoutQuerier(t *testing.T) {
	svc := NewRemoteService(nil, seededStore(), quietLogger())
	res := svc.LoadJobs(context.Background())
	if res.Source != SourceFallback || len(res.Jobs) != 3 {
		t.Errorf("unconfigured remote must fall back to the 3 seeded open jobs, got %d from %s", len(res.Jobs), res.Source)
	}
}

func TestLoadJobsDropsMalformedRows(t *testing.T) {
	bad := liveRow("rj-bad", "Broken", "2025-05-02T10:00:00Z")
	bad.Status = "weird"
	q := &fakeQuerier{rows: []RemoteJobRow{
		bad,
		liveRow("rj-ok", "Fine", "2025-05-03T10:00:00Z"),
	}}
	svc := NewRemoteService(q, seededStore(), quietLogger())

	res := svc.LoadJobs(context.Background())
	if res.Source != SourceLive {
		t.Fatalf("source = %s, want live", res.Source)
	}
	if len(res.Jobs) != 1 || res.Jobs[0].ID != "rj-ok" {
		t.Errorf("malformed row not dropped: %+v", res.Jobs)
	}
}

func TestLoadJobsFallsBackWhenAllRowsMalformed(t *testing.T) {
	bad := liveRow("rj-bad", "Broken", "not-a-timestamp")
	svc := NewRemoteService(&fakeQuerier{rows: []RemoteJobRow{bad}}, seededStore(), quietLogger())
	if res := svc.LoadJobs(context.Background()); res.Source != SourceFallback {
		t.Errorf("source = %s, want fallback", res.Source)
	}
}

func TestUnknownRemoteRoleDropsJoinOnly(t *testing.T) {
	row := liveRow("rj1", "Role check", "2025-05-01T10:00:00Z")
	row.Recruiter.Role = "owner"
	svc := NewRemoteService(&fakeQuerier{rows: []RemoteJobRow{row}}, seededStore(), quietLogger())

	res := svc.LoadJobs(context.Background())
	if res.Source != SourceLive || len(res.Jobs) != 1 {
		t.Fatalf("job with unknown recruiter role must survive, got %d from %s", len(res.Jobs), res.Source)
	}
	if res.Jobs[0].Recruiter != nil {
		t.Error("unrecognized role must not be passed through")
	}
}

func TestLoadFeaturedJobs(t *testing.T) {
	t.Run("live truncated to limit", func(t *testing.T) {
		q := &fakeQuerier{rows: []RemoteJobRow{
			liveRow("rj1", "A", "2025-05-01T10:00:00Z"),
			liveRow("rj2", "B", "2025-05-02T10:00:00Z"),
			liveRow("rj3", "C", "2025-05-03T10:00:00Z"),
		}}
		svc := NewRemoteService(q, seededStore(), quietLogger())
		res := svc.LoadFeaturedJobs(context.Background(), 2)
		if len(res.Jobs) != 2 || res.Jobs[0].ID != "rj3" {
			t.Errorf("got %d jobs starting with %s", len(res.Jobs), res.Jobs[0].ID)
		}
	})
	t.Run("fallback truncated to limit", func(t *testing.T) {
		svc := NewRemoteService(nil, seededStore(), quietLogger())
		res := svc.LoadFeaturedJobs(context.Background(), 2)
		if res.Source != SourceFallback || len(res.Jobs) != 2 {
			t.Errorf("got %d jobs from %s, want 2 from fallback", len(res.Jobs), res.Source)
		}
	})
}

func TestParseRemoteTime(t *testing.T) {
	for _, in := range []string{
		"2025-05-01T10:00:00Z",
		"2025-05-01T10:00:00.123456Z",
		"2025-05-01T10:00:00.123456",
	} {
		if _, err := parseRemoteTime(in); err != nil {
			t.Errorf("parseRemoteTime(%q) failed: %v", in, err)
		}
	}
	if _, err := parseRemoteTime("yesterday"); err == nil {
		t.Error("nonsense timestamp accepted")
	}
}
