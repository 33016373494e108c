package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"zedorolo/internal/adapter/api"
	apimiddleware "zedorolo/internal/adapter/api/middleware"

	"zedorolo/internal/adapter/api/handler"
	"zedorolo/internal/adapter/api/router"
	"zedorolo/internal/adapter/repository"
	"zedorolo/internal/domain/service"
	"zedorolo/internal/infrastructure/firebase"
	"zedorolo/internal/infrastructure/ratelimit"
	"zedorolo/internal/infrastructure/storage"
	"zedorolo/internal/infrastructure/websocket"
	"zedorolo/internal/usecase"
	"zedorolo/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	vehicleRepo := repository.NewFirestoreVehicleRepository(firestoreClient)
	categoryRepo := repository.NewFirestoreCategoryRepository(firestoreClient)
	proposalRepo := repository.NewFirestoreProposalRepository(firestoreClient)
	kycRepo := repository.NewFirestoreKYCRepository(firestoreClient)
	notificationRepo := repository.NewFirestoreNotificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	assistantService := service.NewAssistantService(cfg.AssistantWebhookURL, cfg.CRMWebhookURL)

	notificationUseCase := usecase.NewNotificationUseCase(notificationRepo, wsManager)
	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	kycUseCase := usecase.NewKYCUseCase(kycRepo, userRepo, storageClient, notificationUseCase)
	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, vehicleRepo)
	vehicleUseCase := usecase.NewVehicleUseCase(vehicleRepo, categoryRepo, userRepo, notificationUseCase, rateLimiter)
	proposalUseCase := usecase.NewProposalUseCase(proposalRepo, vehicleRepo, userRepo, notificationUseCase, wsManager, rateLimiter)
	chatUseCase := usecase.NewChatUseCase(proposalRepo, userRepo, notificationUseCase, wsManager, rateLimiter)
	assistantUseCase := usecase.NewAssistantUseCase(assistantService, userRepo, rateLimiter)

	handler.Setup(
		authUseCase,
		userUseCase,
		kycUseCase,
		vehicleUseCase,
		categoryUseCase,
		proposalUseCase,
		chatUseCase,
		notificationUseCase,
		assistantUseCase,
	)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupFileHandler(storageClient)
	handler.SetupWebSocketHandler(wsManager, authMiddleware)
	handler.SetupDevTokenHandler(firebaseAuthClient, userRepo)

	router.Setup(e, authClient, authMiddleware, adminMiddleware)
	router.SetupFileRouter(e, authMiddleware)
	router.SetupWebSocketRouter(e)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
