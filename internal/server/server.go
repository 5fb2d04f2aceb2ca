package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"anoa.com/wodtracker/internal/agent"
	"anoa.com/wodtracker/internal/agent/agents"
	"anoa.com/wodtracker/internal/agent/providers"
	"anoa.com/wodtracker/internal/config"
	"anoa.com/wodtracker/internal/middleware"
	"anoa.com/wodtracker/pkg/storage"

	coachService "anoa.com/wodtracker/internal/modules/coach/service"

	dashboardHttp "anoa.com/wodtracker/internal/modules/dashboard/delivery/http"
	dashboardService "anoa.com/wodtracker/internal/modules/dashboard/service"

	movementHttp "anoa.com/wodtracker/internal/modules/movement/delivery/http"
	movementRepo "anoa.com/wodtracker/internal/modules/movement/repository"
	movementService "anoa.com/wodtracker/internal/modules/movement/service"

	notiHttp "anoa.com/wodtracker/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/wodtracker/internal/modules/notification/repository"
	notifService "anoa.com/wodtracker/internal/modules/notification/service"

	nutritionHttp "anoa.com/wodtracker/internal/modules/nutrition/delivery/http"
	nutritionRepo "anoa.com/wodtracker/internal/modules/nutrition/repository"
	nutritionService "anoa.com/wodtracker/internal/modules/nutrition/service"

	portabilityHttp "anoa.com/wodtracker/internal/modules/portability/delivery/http"
	portabilityService "anoa.com/wodtracker/internal/modules/portability/service"

	profileHttp "anoa.com/wodtracker/internal/modules/profile/delivery/http"
	profileService "anoa.com/wodtracker/internal/modules/profile/service"

	progressionHttp "anoa.com/wodtracker/internal/modules/progression/delivery/http"
	progressionRepo "anoa.com/wodtracker/internal/modules/progression/repository"
	progressionService "anoa.com/wodtracker/internal/modules/progression/service"

	userHttp "anoa.com/wodtracker/internal/modules/user/delivery/http"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	userService "anoa.com/wodtracker/internal/modules/user/service"

	workoutHttp "anoa.com/wodtracker/internal/modules/workout/delivery/http"
	workoutRepo "anoa.com/wodtracker/internal/modules/workout/repository"
	workoutService "anoa.com/wodtracker/internal/modules/workout/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps are the external clients built by main. Redis, Meilisearch, image storage and the
// LLM are optional; the features behind them degrade instead of failing startup.
type Deps struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	Meili        meilisearch.ServiceManager
	ImageStorage storage.ImageStorage
	LLM          providers.LLMProvider
}

type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	scheduler  *agent.Scheduler
	movements  movementService.MovementService
}

func NewServer(deps Deps) (*Server, error) {
	cfg := deps.Config
	db := deps.DB
	redisClient := deps.Redis

	userRepository := userRepo.NewUserRepository(db)
	progressRepository := progressionRepo.NewProgressRepository(db)
	workoutRepository := workoutRepo.NewWorkoutRepository(db)
	nutritionRepository := nutritionRepo.NewNutritionRepository(db)
	movementRepository := movementRepo.NewMovementRepository(db)

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, cfg.AllowedOrigins)

	progressionSvc := progressionService.NewProgressionService(progressRepository, notificationSvc, workoutRepository)
	progressionHandler := progressionHttp.NewProgressionHandler(progressionSvc)

	coach := coachService.NewCoach(deps.LLM, cfg.AITimeout)
	athletes := coachService.NewAthleteLoader(userRepository, progressRepository)

	authSvc := userService.NewAuthService(userRepository, redisClient, cfg)
	authHandler := userHttp.NewAuthHandler(authSvc, cfg.FrontendURL)

	workoutSvc := workoutService.NewWorkoutService(workoutRepository, progressionSvc, coach, athletes)
	workoutHandler := workoutHttp.NewWorkoutHandler(workoutSvc)

	nutritionSvc := nutritionService.NewNutritionService(nutritionRepository, userRepository, coach, athletes, deps.ImageStorage, cfg.Timezone)
	nutritionHandler := nutritionHttp.NewNutritionHandler(nutritionSvc)

	profileSvc := profileService.NewProfileService(userRepository, deps.ImageStorage, progressionSvc)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	dashboardSvc := dashboardService.NewDashboardService(userRepository, workoutRepository, nutritionRepository, progressionSvc, cfg.Timezone)
	dashboardHandler := dashboardHttp.NewDashboardHandler(dashboardSvc)

	var movementIndex movementService.MovementIndex
	if deps.Meili != nil {
		movementIndex = movementService.NewMeiliMovementIndex(deps.Meili)
	}
	movementSvc := movementService.NewMovementService(movementRepository, movementIndex)
	movementHandler := movementHttp.NewMovementHandler(movementSvc)

	portabilitySvc := portabilityService.NewPortabilityService(userRepository, workoutRepository, nutritionRepository, progressionSvc)
	portabilityHandler := portabilityHttp.NewPortabilityHandler(portabilitySvc)

	// Scheduled agents need redis for their dedupe keys
	scheduler := agent.NewScheduler(cfg.Timezone)
	if redisClient != nil {
		reminderCfg := agents.DefaultInactivityReminderConfig()
		reminderCfg.Schedule = cfg.ReminderSchedule
		reminder := agents.NewInactivityReminderAgent(progressRepository, athletes, coach, notificationSvc, redisClient, reminderCfg)
		if err := scheduler.RegisterAgent(reminder); err != nil {
			return nil, err
		}
	} else {
		logrus.Warn("⚠️ Redis not configured, inactivity reminders disabled")
	}

	var limiter middleware.RequestRateLimiter
	if redisClient != nil {
		limiter = redis_rate.NewLimiter(redisClient)
	}
	aiLimit := middleware.RateLimit(limiter, "ai", cfg.RateLimitAIPerMin)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/notifications/unread-count", "/healthz"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := middleware.NewAuthMiddleware(userRepository, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/google/login", authHandler.GoogleLogin)
		auth.GET("/google/callback", authHandler.GoogleCallback)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin routes
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/movements", movementHandler.Create)
			adminGroup.DELETE("/movements/:id", movementHandler.Delete)
		}

		protected.GET("/progress", progressionHandler.GetProgress)
		protected.POST("/progress/session", progressionHandler.StartSession)
		protected.GET("/progress/history", progressionHandler.GetHistory)
		protected.POST("/progress/reset", progressionHandler.Reset)

		protected.POST("/workouts/analyze", aiLimit, workoutHandler.AnalyzeWod)
		protected.POST("/workouts/generate", aiLimit, workoutHandler.GenerateHomeWorkout)
		protected.POST("/workouts", workoutHandler.LogWorkout)
		protected.GET("/workouts", workoutHandler.ListWorkouts)
		protected.GET("/workouts/:id", workoutHandler.GetWorkout)
		protected.DELETE("/workouts/:id", workoutHandler.DeleteWorkout)

		nutrition := protected.Group("/nutrition")
		{
			nutrition.POST("/analyze", aiLimit, nutritionHandler.AnalyzeFood)
			nutrition.POST("/meals", nutritionHandler.LogMeal)
			nutrition.GET("/meals", nutritionHandler.ListMeals)
			nutrition.DELETE("/meals/:id", nutritionHandler.DeleteMeal)
			nutrition.POST("/diet-plan", aiLimit, nutritionHandler.GenerateDietPlan)
			nutrition.GET("/diet-plan", nutritionHandler.GetDietPlan)
			nutrition.POST("/weight", nutritionHandler.AddWeight)
			nutrition.GET("/weight", nutritionHandler.WeightHistory)
		}

		protected.GET("/dashboard", dashboardHandler.GetDashboard)

		protected.GET("/profile/me", profileHandler.GetCurrentProfile)
		protected.PUT("/profile", profileHandler.UpdateProfile)

		protected.GET("/movements", movementHandler.List)
		protected.GET("/movements/:id", movementHandler.Get)

		protected.GET("/export", portabilityHandler.Export)
		protected.POST("/import", portabilityHandler.Import)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler: scheduler,
		movements: movementSvc,
	}, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Movements is used by bootstrap to seed the catalog through the same service as the API.
func (s *Server) Movements() movementService.MovementService {
	return s.movements
}

// Run starts the scheduler and blocks serving HTTP until Shutdown is called.
func (s *Server) Run() error {
	s.scheduler.Start()
	logrus.Infof("💪 WOD tracker listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop(ctx)
	return s.httpServer.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
