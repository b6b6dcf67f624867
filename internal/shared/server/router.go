package server

import (
	"github.com/gin-gonic/gin"

	"careers-backend/internal/careers"
	"careers-backend/internal/shared/server/middleware"
)

// RouterDeps carries everything the router needs, injected by bootstrap.
type RouterDeps struct {
	Careers        *careers.Handler
	AllowedOrigins []string
	SubmitRate     float64
	SubmitBurst    int
	Limiter        *middleware.RateLimiter
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.AllowedOrigins),
	)

	submitLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"SUBMIT": {Rate: deps.SubmitRate, Burst: deps.SubmitBurst},
		},
		DefaultGroup: "SUBMIT",
		Limiter:      deps.Limiter,
	})

	api := r.Group("/api")
	{
		api.GET("/health", deps.Careers.Health)

		jobs := api.Group("/jobs")
		{
			jobs.GET("", deps.Careers.ListJobs)
			jobs.GET("/search", deps.Careers.SearchJobs)
			jobs.GET("/:id", deps.Careers.GetJob)
			jobs.POST("", deps.Careers.CreateJob)
			jobs.PUT("/:id", deps.Careers.UpdateJob)
			jobs.DELETE("/:id", deps.Careers.DeleteJob)
		}

		apps := api.Group("/applications")
		{
			apps.GET("", deps.Careers.ListApplications)
			apps.GET("/job/:jobId", deps.Careers.ListApplicationsForJob)
			apps.GET("/:id", deps.Careers.GetApplication)
			apps.POST("", submitLimit, deps.Careers.SubmitApplication)
			apps.PUT("/:id/status", deps.Careers.UpdateApplicationStatus)
		}

		api.GET("/files/*key", deps.Careers.DownloadResume)
	}

	return r
}
