package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/careerhub/internal/config"
	"anoa.com/careerhub/internal/middleware"
	"anoa.com/careerhub/pkg/broker"
	"anoa.com/careerhub/pkg/password"
	"anoa.com/careerhub/pkg/session"
	"anoa.com/careerhub/pkg/storage"

	jobHttp "anoa.com/careerhub/internal/modules/job/delivery/http"
	jobRepo "anoa.com/careerhub/internal/modules/job/repository"
	jobService "anoa.com/careerhub/internal/modules/job/service"

	notiHttp "anoa.com/careerhub/internal/modules/notification/delivery/http"
	notifRepo "anoa.com/careerhub/internal/modules/notification/repository"
	notifService "anoa.com/careerhub/internal/modules/notification/service"

	postHttp "anoa.com/careerhub/internal/modules/post/delivery/http"
	postRepo "anoa.com/careerhub/internal/modules/post/repository"
	postService "anoa.com/careerhub/internal/modules/post/service"

	profileHttp "anoa.com/careerhub/internal/modules/profile/delivery/http"
	profileService "anoa.com/careerhub/internal/modules/profile/service"

	searchHttp "anoa.com/careerhub/internal/modules/search/delivery/http"
	searchService "anoa.com/careerhub/internal/modules/search/service"

	userHttp "anoa.com/careerhub/internal/modules/user/delivery/http"
	userRepo "anoa.com/careerhub/internal/modules/user/repository"
	userService "anoa.com/careerhub/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
	publisher   broker.Publisher
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := userRepo.NewUserRepository(db)
	fileStorage, useLocalMedia := newFileStorage(cfg)
	meiliSvc := newSearchService(cfg)
	publisher := newPublisher(cfg)

	var sessionStore session.Store
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient)
	} else {
		log.Println("⚠️ Redis unavailable, sessions are kept in memory")
		sessionStore = session.NewMemoryStore()
	}
	sessions := session.NewManager(sessionStore, cfg.JWTSecret, cfg.SessionTTL)

	authSvc := userService.NewAuthService(userRepo, sessions, password.NewBcrypt(0))
	authHandler := userHttp.NewAuthHandler(authSvc, redisClient, cfg.RateLimitSignup, cfg.IsProduction())

	// Notification Module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient, originChecker(cfg.AllowedOrigins))

	jobRepository := jobRepo.NewRepository(db)
	applicantRepository := jobRepo.NewApplicantRepository(db)
	jobSvc := jobService.NewService(jobRepository, applicantRepository, userRepo, fileStorage, notificationSvc, meiliSvc, publisher)
	jobHandler := jobHttp.NewJobHandler(jobSvc)

	profileSvc := profileService.NewProfileService(userRepo, jobRepository, applicantRepository, fileStorage)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	postRepository := postRepo.NewPostRepository(db)
	postSvc := postService.NewPostService(postRepository, userRepo, fileStorage, redisClient, cfg.RateLimitPost, meiliSvc)
	postHandler := postHttp.NewPostHandler(postSvc)

	searchHandler := searchHttp.NewSearchHandler(meiliSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz"},
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if useLocalMedia {
		router.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	authMiddleware := middleware.NewAuthMiddleware(sessions)

	api := router.Group("/api")
	api.Use(authMiddleware.Authenticate())

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/signin", authHandler.Signin)
		auth.POST("/logout", authHandler.Logout)

		auth.GET("/profile", authMiddleware.RequireLogin(), profileHandler.GetProfile)
		auth.GET("/profile/create", authMiddleware.RequireLogin(), profileHandler.GetCreateForm)
		auth.POST("/profile/create", authMiddleware.RequireLogin(), profileHandler.CreateProfile)
	}

	// Job routes
	jobs := api.Group("/jobs")
	{
		jobs.GET("", jobHandler.ListJobs)
		jobs.POST("", authMiddleware.RequireAuth(), jobHandler.CreateJob)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.PUT("/:id", authMiddleware.RequireAuth(), jobHandler.UpdateJob)
		jobs.DELETE("/:id", authMiddleware.RequireAuth(), jobHandler.DeleteJob)
		jobs.POST("/:id/apply", jobHandler.ApplyJob)
		jobs.POST("/applicants/:applicant_id/reject", authMiddleware.RequireLogin(), jobHandler.RejectApplicant)
	}

	// Post routes
	posts := api.Group("/posts")
	{
		posts.GET("", authMiddleware.RequireLogin(), postHandler.ListPosts)
		posts.POST("", authMiddleware.RequireLogin(), postHandler.CreatePost)
		posts.GET("/:slug", postHandler.GetPost)
		posts.PUT("/:slug", authMiddleware.RequireLogin(), postHandler.UpdatePost)
		posts.DELETE("/:slug", authMiddleware.RequireLogin(), postHandler.DeletePost)
	}

	api.GET("/search", searchHandler.Search)

	// Notification routes
	notifications := api.Group("/notifications")
	notifications.Use(authMiddleware.RequireAuth())
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.GET("/unread-count", notificationHandler.UnreadCount)
		notifications.PUT("/:id/read", notificationHandler.MarkAsRead)
		notifications.PUT("/read-all", notificationHandler.MarkAllAsRead)
		notifications.GET("/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
		publisher:   publisher,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Close() error {
	return s.publisher.Close()
}

func newFileStorage(cfg *config.Config) (storage.FileStorage, bool) {
	if cfg.CloudinaryURL != "" {
		cloud, err := storage.NewCloudinaryStorage(cfg.CloudinaryURL, cfg.CloudinaryUploadFolder)
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
		return cloud, false
	}

	local, err := storage.NewLocalStorage(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		log.Fatalf("failed to initialize local storage: %v", err)
	}
	log.Printf("📁 Storing uploads under %s", cfg.MediaRoot)
	return local, true
}

func newSearchService(cfg *config.Config) searchService.SearchService {
	meiliHost := cfg.MeiliSearchHost
	if meiliHost == "" {
		log.Println("⚠️ MEILISEARCH_HOST not set, search is disabled")
		return searchService.NewDisabledSearchService()
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	return searchService.NewMeiliSearchService(meiliClient)
}

func newPublisher(cfg *config.Config) broker.Publisher {
	if cfg.RabbitMQURL == "" {
		return broker.NewNoopPublisher()
	}

	publisher, err := broker.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, application events are dropped: %v", err)
		return broker.NewNoopPublisher()
	}
	log.Printf("✅ Publishing application events to %s", cfg.RabbitMQQueue)
	return publisher
}

func splitOrigins(allowedOrigins string) []string {
	var origins []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

// originChecker accepts websocket upgrades from the CORS origins and from clients that send no Origin.
func originChecker(allowedOrigins string) func(r *http.Request) bool {
	origins := splitOrigins(allowedOrigins)
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range origins {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(allowedOrigins),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
