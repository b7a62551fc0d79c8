package store

import (
	"time"

	"github.com/devmatch/devmatch-backend/internal/models"
)

// PutUser inserts or replaces a user record directly. Registration itself is
// handled by the identity provider; this exists for seeding and tests.
func (s *MemoryStore) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
	s.users = append(s.users, u)
}

// SeedSampleData loads the demonstration dataset served whenever the remote
// source is unreachable: two recruiters, three developers, five jobs in
// assorted states, four applications, two payments and one review.
func (s *MemoryStore) SeedSampleData() {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	s.users = []models.User{
		{
			ID: "r1", Name: "John Recruiter", Email: "recruiter@example.com",
			Role: models.RoleRecruiter, Company: "TechCorp", Location: "New York",
			CreatedAt: day(2023, time.January, 15),
		},
		{
			ID: "r2", Name: "Sarah Hiring", Email: "sarah@techhire.com",
			Role: models.RoleRecruiter, Company: "TechHire", Location: "Boston",
			CreatedAt: day(2022, time.November, 5),
		},
		{
			ID: "d1", Name: "Jane Developer", Email: "developer@example.com",
			Role: models.RoleDeveloper, Skills: []string{"React", "TypeScript", "Node.js"},
			Experience: "5 years", HourlyRate: 50, Location: "San Francisco",
			Bio:       "Full stack developer with expertise in React and Node.js",
			CreatedAt: day(2022, time.September, 20),
		},
		{
			ID: "d2", Name: "Mike Coder", Email: "mike@coder.dev",
			Role: models.RoleDeveloper, Skills: []string{"Python", "Django", "PostgreSQL"},
			Experience: "3 years", HourlyRate: 45, Location: "Chicago",
			Bio:       "Backend developer specialized in Python and data engineering",
			CreatedAt: day(2023, time.February, 10),
		},
		{
			ID: "d3", Name: "Alex Designer", Email: "alex@uidesign.co",
			Role: models.RoleDeveloper, Skills: []string{"UI/UX", "Figma", "React", "CSS"},
			Experience: "4 years", HourlyRate: 55, Location: "Los Angeles",
			Bio:       "Frontend developer with strong design background",
			CreatedAt: day(2022, time.December, 5),
		},
	}

	s.jobs = []models.Job{
		{
			ID:    "j1",
			Title: "React Developer for SaaS Platform",
			Description: "Looking for an experienced React developer to build out new features " +
				"for our SaaS platform. The project involves implementing a dashboard with " +
				"various data visualizations and interactive components.",
			RequiredSkills: []string{"React", "TypeScript", "CSS"},
			Budget:         5000, Duration: "2 months", Status: models.JobOpen,
			RecruiterID: "r1", Location: "Remote", CreatedAt: day(2025, time.May, 1),
		},
		{
			ID:    "j2",
			Title: "Backend Developer for API Development",
			Description: "We need a backend developer to create RESTful APIs for our mobile " +
				"application. The ideal candidate should have experience with Node.js and MongoDB.",
			RequiredSkills: []string{"Node.js", "Express", "MongoDB"},
			Budget:         4000, Duration: "1.5 months", Status: models.JobOpen,
			RecruiterID: "r2", Location: "Remote", CreatedAt: day(2025, time.May, 5),
		},
		{
			ID:    "j3",
			Title: "Full Stack Developer for E-commerce Site",
			Description: "Looking for a full stack developer to help build our e-commerce " +
				"platform. The project involves frontend work with React and backend work " +
				"with Node.js and PostgreSQL.",
			RequiredSkills: []string{"React", "Node.js", "PostgreSQL"},
			Budget:         7000, Duration: "3 months", Status: models.JobOpen,
			RecruiterID: "r1", Location: "Hybrid - New York", CreatedAt: day(2025, time.May, 10),
		},
		{
			ID:    "j4",
			Title: "UI/UX Developer for Mobile App",
			Description: "We are seeking a UI/UX developer who can help improve the user " +
				"experience of our mobile application. The candidate should have experience " +
				"with mobile design principles and React Native.",
			RequiredSkills: []string{"UI/UX", "React Native", "Figma"},
			Budget:         3500, Duration: "1 month", Status: models.JobInProgress,
			RecruiterID: "r2", Location: "Remote", CreatedAt: day(2025, time.May, 2),
		},
		{
			ID:    "j5",
			Title: "Python Developer for Data Analysis",
			Description: "We need a Python developer to create data analysis scripts and " +
				"visualizations for our marketing team. Experience with pandas, numpy, and " +
				"matplotlib is required.",
			RequiredSkills: []string{"Python", "pandas", "Data Visualization"},
			Budget:         3000, Duration: "1 month", Status: models.JobCompleted,
			RecruiterID: "r1", Location: "Remote", CreatedAt: day(2025, time.April, 15),
		},
	}

	s.applications = []models.Application{
		{
			ID: "a1", JobID: "j1", DeveloperID: "d1",
			Proposal: "I have extensive experience with React and TypeScript, and I have built " +
				"several dashboards with complex data visualizations. I am confident I can " +
				"deliver this project successfully.",
			Status: models.ApplicationPending, CreatedAt: day(2025, time.May, 2),
		},
		{
			ID: "a2", JobID: "j2", DeveloperID: "d2",
			Proposal: "I specialize in Node.js and MongoDB development, and I have created many " +
				"RESTful APIs for various clients. I am very interested in this project.",
			Status: models.ApplicationAccepted, CreatedAt: day(2025, time.May, 6),
		},
		{
			ID: "a3", JobID: "j3", DeveloperID: "d1",
			Proposal: "As a full stack developer with expertise in both React and Node.js, I " +
				"believe I am a perfect fit for this project. I also have experience with PostgreSQL.",
			Status: models.ApplicationPending, CreatedAt: day(2025, time.May, 11),
		},
		{
			ID: "a4", JobID: "j4", DeveloperID: "d3",
			Proposal: "I have a strong background in UI/UX design and development, particularly " +
				"for mobile applications. I would love to help improve your app's user experience.",
			Status: models.ApplicationAccepted, CreatedAt: day(2025, time.May, 3),
		},
	}

	s.payments = []models.Payment{
		{
			ID: "p1", JobID: "j5", Amount: 3000, Commission: 300,
			Status: models.PaymentCompleted, DeveloperID: "d2", RecruiterID: "r1",
			CreatedAt: day(2025, time.May, 10),
		},
		// Upfront half payment for the in-progress mobile app job.
		{
			ID: "p2", JobID: "j4", Amount: 1750, Commission: 175,
			Status: models.PaymentCompleted, DeveloperID: "d3", RecruiterID: "r2",
			CreatedAt: day(2025, time.May, 5),
		},
	}

	s.reviews = []models.Review{
		{
			ID: "rv1", FromUserID: "r1", ToUserID: "d2", Rating: 5,
			Comment: "Excellent work! Delivered the project on time and with high quality. " +
				"Would definitely hire again.",
			JobID: "j5", CreatedAt: day(2025, time.May, 11),
		},
	}
}
