package models

import "testing"

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		ok       bool
	}{
		{JobOpen, JobInProgress, true},
		{JobOpen, JobCanceled, true},
		{JobOpen, JobCompleted, false},
		{JobInProgress, JobCompleted, true},
		{JobInProgress, JobCanceled, true},
		{JobInProgress, JobOpen, false},
		{JobCompleted, JobOpen, false},
		{JobCompleted, JobCanceled, false},
		{JobCanceled, JobOpen, false},
		{JobCanceled, JobCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.ok {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	for _, s := range []JobStatus{JobCompleted, JobCanceled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []JobStatus{JobOpen, JobInProgress} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestApplicationStatusActive(t *testing.T) {
	if !ApplicationPending.Active() || !ApplicationAccepted.Active() {
		t.Error("pending and accepted applications are active")
	}
	if ApplicationRejected.Active() {
		t.Error("rejected applications are not active")
	}
}

func TestParseUserRole(t *testing.T) {
	cases := []struct {
		in    string
		want  UserRole
		valid bool
	}{
		{"recruiter", RoleRecruiter, true},
		{"Developer", RoleDeveloper, true},
		{" admin ", RoleAdmin, true},
		{"superuser", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := ParseUserRole(c.in)
		if ok != c.valid {
			t.Errorf("ParseUserRole(%q) valid = %v, want %v", c.in, ok, c.valid)
			continue
		}
		if ok && got != c.want {
			t.Errorf("ParseUserRole(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidRating(t *testing.T) {
	for _, r := range []int{1, 3, 5} {
		if !ValidRating(r) {
			t.Errorf("rating %d should be valid", r)
		}
	}
	for _, r := range []int{0, -1, 6} {
		if ValidRating(r) {
			t.Errorf("rating %d should be invalid", r)
		}
	}
}

func TestJobDraftValidate(t *testing.T) {
	valid := JobDraft{
		Title:          "Go Developer",
		Description:    "Build APIs",
		RequiredSkills: []string{"Go"},
		Budget:         1000,
		RecruiterID:    "r1",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}

	t.Run("negative budget", func(t *testing.T) {
		d := valid
		d.Budget = -1
		if d.Validate() == nil {
			t.Error("negative budget accepted")
		}
	})
	t.Run("no skills", func(t *testing.T) {
		d := valid
		d.RequiredSkills = nil
		if d.Validate() == nil {
			t.Error("empty skill list accepted")
		}
	})
	t.Run("blank title", func(t *testing.T) {
		d := valid
		d.Title = "  "
		if d.Validate() == nil {
			t.Error("blank title accepted")
		}
	})
}

func TestApplicationDraftValidate(t *testing.T) {
	valid := ApplicationDraft{JobID: "j1", DeveloperID: "d1", Proposal: "I can do this."}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
	d := valid
	d.Proposal = " "
	if d.Validate() == nil {
		t.Error("blank proposal accepted")
	}
}
