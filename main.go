package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"proconecta/config"
	"proconecta/cron"
	"proconecta/database"
	messageRepoPkg "proconecta/database/repository/message"
	notificationRepoPkg "proconecta/database/repository/notification"
	ratingRepoPkg "proconecta/database/repository/rating"
	serviceRepoPkg "proconecta/database/repository/service"
	userRepoPkg "proconecta/database/repository/user"
	"proconecta/handlers"
	"proconecta/routes"
	"proconecta/services/discovery"
	"proconecta/services/lifecycle"
	"proconecta/services/messaging"
	"proconecta/services/notification"
	"proconecta/services/rating"
	"proconecta/services/storage"
	"proconecta/services/user"
	"proconecta/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	ratingRepo := ratingRepoPkg.NewMongoRatingRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo, Sessions: user.RedisSessionStore{}}
	notificationService := &notification.DefaultNotificationService{
		Repo:  notificationRepo,
		Queue: cron.NewQueueClient(),
	}
	lifecycleService := &lifecycle.DefaultLifecycleService{
		Services: serviceRepo,
		Users:    userRepo,
		Notifier: notificationService,
	}
	ratingService := &rating.DefaultRatingService{
		Ratings:  ratingRepo,
		Services: serviceRepo,
		Users:    userRepo,
	}
	discoveryService := &discovery.DefaultDiscoveryService{
		Services: serviceRepo,
		Users:    userRepo,
	}
	messagingService := &messaging.DefaultMessagingService{
		Messages: messageRepo,
		Services: serviceRepo,
	}

	// Background push delivery and health checks.
	cron.InitPushWorker(userRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.CacheClient, utils.AuthCacheClient, utils.PhotoCacheClient},
		database.MongoClient,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserHandler:         &handlers.UserHandler{UserService: userService},
		ServiceHandler:      &handlers.ServiceHandler{Lifecycle: lifecycleService},
		DiscoveryHandler:    &handlers.DiscoveryHandler{Discovery: discoveryService},
		RatingHandler:       &handlers.RatingHandler{Ratings: ratingService},
		MessageHandler:      &handlers.MessageHandler{Messaging: messagingService},
		NotificationHandler: &handlers.NotificationHandler{Notifications: notificationService},
		StorageHandler:      &handlers.StorageHandler{Storage: storageService, UserService: userService, Lifecycle: lifecycleService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
