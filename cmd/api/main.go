package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/devmatch/devmatch-backend/internal/auth"
	"github.com/devmatch/devmatch-backend/internal/config"
	"github.com/devmatch/devmatch-backend/internal/database"
	"github.com/devmatch/devmatch-backend/internal/handlers"
	"github.com/devmatch/devmatch-backend/internal/services"
	"github.com/devmatch/devmatch-backend/internal/store"
)

func main() {
	// 1. Environment & configuration
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("could not load .env file: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("configuration invalid: %v", err)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// 2. Pick the store: Postgres when configured, otherwise the seeded
	// in-memory dataset.
	var st store.Store
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		gs, err := store.NewGormStore(db)
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		st = gs
		log.Info("using postgres store")
	} else {
		ms := store.NewMemoryStore()
		ms.SeedSampleData()
		st = ms
		log.Info("using seeded in-memory store")
	}

	// 3. Remote source; without credentials every read falls back locally.
	var querier services.RemoteJobsQuerier
	if cfg.SupabaseURL != "" {
		querier = services.NewSupabaseJobsQuerier(cfg.SupabaseURL, cfg.SupabaseKey)
		log.Info("supabase remote source configured")
	}

	// 4. Services and handlers
	jobService := services.NewJobService(st, log, cfg.RejectSiblingsOnAccept)
	remoteService := services.NewRemoteService(querier, st, log)

	jobHandler := handlers.NewJobHandler(jobService, remoteService)
	appHandler := handlers.NewApplicationHandler(jobService)
	userHandler := handlers.NewUserHandler(jobService)

	// 5. Router & CORS
	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsCfg))
	r.Use(auth.Middleware(cfg.JWTSecret))

	// 6. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		// Public listing surface
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/featured", jobHandler.FeaturedJobs)
		api.GET("/jobs/skills", jobHandler.ListSkills)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.GET("/users/:id", userHandler.Profile)

		// Authenticated actions
		authed := api.Group("", auth.RequireAuth())
		{
			authed.POST("/jobs", jobHandler.PostJob)
			authed.POST("/jobs/:id/complete", jobHandler.CompleteJob)
			authed.POST("/jobs/:id/cancel", jobHandler.CancelJob)
			authed.GET("/jobs/:id/applications", appHandler.ListForJob)
			authed.POST("/jobs/:id/applications", appHandler.Apply)
			authed.POST("/applications/:id/accept", appHandler.Accept)
			authed.POST("/applications/:id/reject", appHandler.Reject)
			authed.GET("/recruiters/me/jobs", jobHandler.MyJobs)
			authed.GET("/developers/me/applications", appHandler.MyApplications)
			authed.GET("/developers/me/earnings", appHandler.Earnings)
			authed.GET("/me/completed-jobs", jobHandler.CompletedJobs)
			authed.GET("/admin/commission", userHandler.Commission)
		}
	}

	log.Infof("server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
