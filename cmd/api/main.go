package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"servicehub/internal/adapter/api"
	"servicehub/internal/adapter/api/handler"
	apimiddleware "servicehub/internal/adapter/api/middleware"
	"servicehub/internal/adapter/api/router"
	"servicehub/internal/adapter/repository"
	"servicehub/internal/infrastructure/firebase"
	"servicehub/internal/infrastructure/ratelimit"
	"servicehub/internal/infrastructure/websocket"
	"servicehub/internal/usecase"
	"servicehub/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption

	// Service account JSON from the environment wins (production);
	// otherwise fall back to a file path for local development. With
	// neither, application default credentials apply.
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
	} else if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	profileRepo := repository.NewFirestoreProfileRepository(firestoreClient, cfg.AppID)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient, cfg.AppID)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient, cfg.AppID)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	names := usecase.NewDisplayNameCache(profileRepo)
	profileUseCase := usecase.NewProfileUseCase(profileRepo)
	catalogUseCase := usecase.NewCatalogUseCase(listingRepo, profileRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, listingRepo, profileRepo, names, wsManager)
	sessionUseCase := usecase.NewSessionUseCase(profileUseCase, firebaseAuthClient, names)

	handler.Setup(sessionUseCase, profileUseCase, catalogUseCase, chatUseCase, names)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	wsHandler := handler.NewWebSocketHandler(wsManager, sessionUseCase, catalogUseCase, chatUseCase, rateLimiter)

	router.Setup(e, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
