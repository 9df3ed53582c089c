package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"agrisoil-backend/internal/config"
	"agrisoil-backend/internal/database/postgres"
	redisdb "agrisoil-backend/internal/database/redis"
	"agrisoil-backend/internal/event"
	"agrisoil-backend/internal/handlers"
	"agrisoil-backend/internal/repository"
	"agrisoil-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setupLogging() (*os.File, error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic: %v\n", r)
		}
	}()

	logDir := filepath.Join("/agrisoil", "log")
	fmt.Println("Log directory:", logDir)
	err := os.MkdirAll(logDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	logFile, err := setupLogging()
	if err != nil {
		log.Printf("Error setting up logging, continuing with stderr: %v", err)
	} else {
		defer logFile.Close()
	}

	cfg := config.New()

	serverPort := cfg.Port
	if serverPort == "" {
		serverPort = "8000"
	}

	// Postgres is mandatory. A slow database start should not kill
	// us, so block here retrying until it comes up; everything below
	// needs a live connection.
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("Initial database connection failed, retrying: %v", err)
		postgres.RetryConnectOnFailed(5*time.Second, &db, cfg.PostgresCfg)
	}
	if err := postgres.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialise database schema: %v", err)
	}

	// Redis and RabbitMQ are optional. Without Redis the auth service
	// falls back to in-memory login attempt tracking; without RabbitMQ
	// order events are simply not published.
	var redisClient *redis.Client
	redisWrapper, err := redisdb.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, 0)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	} else {
		redisClient = redisWrapper.GetClient()
		defer redisWrapper.Close()
	}

	var publisher *event.OrderEventPublisher
	rabbitConn, err := event.ConnectRabbitMQ(cfg.RabbitMQCfg)
	if err != nil {
		log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
	} else {
		publisher = event.NewOrderEventPublisher(rabbitConn)
		defer rabbitConn.Close()
	}

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	jwtService := services.NewJWTService(cfg.AuthCfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPCfg)
	authService := services.NewAuthService(userRepo, jwtService, emailService, cfg, redisClient)
	oauthService := services.NewOAuthService(cfg.OAuthCfg)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, publisher)
	paymentService := services.NewPaymentService(cfg.PaymentCfg, orderRepo, productRepo, userRepo, emailService, publisher)
	mlClient := services.NewMLClient(cfg.MLCfg)
	predictionService := services.NewPredictionService(mlClient, productService)

	r := gin.Default()
	r.Use(handlers.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		health := gin.H{"status": "ok"}
		if publisher != nil {
			health["order_events"] = publisher.Stats()
		}
		c.JSON(200, health)
	})

	authHandler := handlers.NewAuthHandler(authService, oauthService, jwtService)
	authHandler.RegisterRoutes(r)

	userHandler := handlers.NewUserHandler(authService, jwtService)
	userHandler.RegisterRoutes(r)

	productHandler := handlers.NewProductHandler(productService, jwtService)
	productHandler.RegisterRoutes(r)

	orderHandler := handlers.NewOrderHandler(orderService, jwtService)
	orderHandler.RegisterRoutes(r)

	paymentHandler := handlers.NewPaymentHandler(paymentService, jwtService)
	paymentHandler.RegisterRoutes(r)

	predictionHandler := handlers.NewPredictionHandler(predictionService)
	predictionHandler.RegisterRoutes(r)

	log.Printf("Starting agrisoil-backend on port %s", serverPort)
	if err := r.Run(":" + serverPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
