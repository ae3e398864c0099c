package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"github.com/n200534/socioconnect/internal/config"
	"github.com/n200534/socioconnect/internal/database"
	"github.com/n200534/socioconnect/internal/handler"
	"github.com/n200534/socioconnect/internal/repository"
	"github.com/n200534/socioconnect/internal/service"
)

// Run wires the whole application together and serves HTTP until the process
// exits.
func Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	repostRepo := repository.NewRepostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	authService := service.NewAuthService(cfg)
	userService := service.NewUserService(userRepo, followRepo)
	postService := service.NewPostService(postRepo)
	feedService := service.NewFeedService(postRepo, followRepo, userRepo)
	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	interactionService := service.NewInteractionService(
		likeRepo, repostRepo, followRepo, commentRepo, postRepo, userRepo,
		notificationService, db)

	routerCfg := RouterConfig{
		AuthHandler:         handler.NewAuthHandler(userService, authService),
		UserHandler:         handler.NewUserHandler(userService, feedService),
		PostHandler:         handler.NewPostHandler(postService, feedService),
		InteractionHandler:  handler.NewInteractionHandler(interactionService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		JWTSecret:           cfg.JWTSecret,
	}

	// Object storage is optional; without it the upload endpoints are not
	// mounted and the API still serves everything else.
	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		log.Printf("Object storage disabled: %v", err)
	} else {
		routerCfg.UploadHandler = handler.NewUploadHandler(mediaService, userService)
	}

	router := NewRouter(routerCfg)

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
