// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"jobportal-backend/internal/auth"
	"jobportal-backend/internal/controller/admin"
	"jobportal-backend/internal/controller/application"
	"jobportal-backend/internal/controller/job"
	"jobportal-backend/internal/controller/profile"
	"jobportal-backend/internal/middleware"
	"jobportal-backend/internal/model"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "jobportal-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("CORS_ORIGIN")
	if allowOriginsStr == "" {
		allowOriginsStr = "http://localhost:3000"
	}
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB)
	jobController := job.NewJobController(s.DB)
	applicationController := application.NewApplicationController(s.DB)
	profileController := profile.NewProfileController(s.DB)
	adminController := admin.NewAdminController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())

	r.GET("/", s.HelloHandler)
	r.GET("/health", s.healthHandler)

	authRoute := r.Group("/auth")
	{
		authRoute.Use(middleware.EnvRateLimitMiddleware())
		authRoute.POST("register", lAuth.RegisterHandler)
		authRoute.POST("login", lAuth.LoginHandler)
		authRoute.POST("admin/login", lAuth.AdminLoginHandler)
	}

	api := r.Group("/api")
	{
		// Public job browsing
		api.GET("jobs", jobController.SearchJobs)
		api.GET("jobs/:id", jobController.GetJobByID)

		needAuth := api.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))
			needAuth.POST("jobs", jobController.CreateJob)
			needAuth.POST("jobs/:id/save", jobController.ToggleSaveJob)
			needAuth.GET("saved-jobs", jobController.GetSavedJobs)
			needAuth.POST("jobs/:id/apply", applicationController.ApplyHandler)

			userRoute := needAuth.Group("/user")
			{
				userRoute.GET("applications", applicationController.MyApplications)
				userRoute.GET("profile", profileController.GetProfile)
				userRoute.PUT("profile", profileController.UpdateProfile)
			}
		}
	}

	userFiles := r.Group("/user")
	{
		userFiles.Use(middleware.RequireAuth(s.DB))
		userFiles.POST("upload-cv", middleware.SizeLimit(5<<20), profileController.UploadCV)
		userFiles.GET("cv/:id", profileController.GetCV)
	}

	adminRoute := r.Group("/admin")
	{
		adminRoute.Use(middleware.RequireAuth(s.DB), middleware.CheckRole(model.RoleAdmin))
		adminRoute.GET("jobs", adminController.GetJobs)
		adminRoute.DELETE("jobs/:id", adminController.DeleteJob)
		adminRoute.GET("users", adminController.GetUsers)
		adminRoute.DELETE("users/:id", adminController.DeleteUser)
		adminRoute.GET("dashboard/stats", adminController.DashboardStats)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloHandler handle request by return a welcome message
func (s *Server) HelloHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Job Portal API"

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
