package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/internal/handlers"
	"portfolio/internal/middleware"
	"portfolio/internal/models"
	"portfolio/internal/repositories"
	"portfolio/internal/services"
	"portfolio/pkg/mailer"
	"portfolio/pkg/rabbitmq"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	// Set up Viper to read configuration from environment variables
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("JWT_EXPIRY", "24h")
	viper.SetDefault("SMTP_PORT", "587")
	viper.SetDefault("FRONTEND_URL", "*")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	appEnv := viper.GetString("APP_ENV")
	databaseURL := requireConfig("DATABASE_URL", appEnv)
	jwtSecret := requireConfig("JWT_SECRET", appEnv)
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	frontendURL := viper.GetString("FRONTEND_URL")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY"))
	if err != nil {
		log.Fatalf("Invalid JWT_EXPIRY: %v", err)
	}

	// --- Database ---
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		if appEnv == "production" {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		// Development convenience: keep the server bootable without a
		// running Postgres by falling back to an in-memory store.
		log.Printf("Failed to connect to database (%v), falling back to in-memory SQLite", err)
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to open fallback database: %v", err)
		}
	}
	if err := db.AutoMigrate(&models.User{}, &models.Project{}, &models.Contact{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// When no broker is configured the contact pipeline sends notification
	// emails synchronously instead.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close() // Ensure the connection is closed on exit
	} else {
		log.Println("RABBITMQ_URL not set, contact notifications will be sent synchronously")
	}

	// --- Mailer (optional) ---
	var mailSender mailer.Sender
	ownerEmail := viper.GetString("EMAIL_TO")
	ownerName := viper.GetString("EMAIL_FROM_NAME")
	if smtpHost := viper.GetString("SMTP_HOST"); smtpHost != "" && ownerEmail != "" {
		mailSender = mailer.NewSMTPMailer(mailer.Config{
			Host:     smtpHost,
			Port:     viper.GetString("SMTP_PORT"),
			Username: viper.GetString("SMTP_USERNAME"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("EMAIL_FROM"),
			FromName: ownerName,
		})
	} else if appEnv == "production" {
		log.Fatalf("SMTP_HOST and EMAIL_TO must be set in production")
	} else {
		log.Println("SMTP not configured, contact notification emails are disabled")
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	projectRepo := repositories.NewGORMProjectRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, jwtSecret, jwtExpiry)
	projectService := services.NewProjectService(projectRepo)
	var publisher services.EventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	contactService := services.NewContactService(contactRepo, mailSender, publisher, ownerEmail, ownerName)

	// Bootstrap the first admin account when credentials are provided.
	seedAdmin(authService)

	// --- Initialize Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	contactHandler := handlers.NewContactHandler(contactService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New(cors.Config{
		AllowOrigins: frontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// --- API Routes ---
	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired(userRepo)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, authRequired)
	projectHandler.RegisterRoutes(api, authRequired)
	contactHandler.RegisterRoutes(api, authRequired, adminRequired)

	// --- Root & Health Endpoints ---
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Portfolio API is running...")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start Contact Event Consumer in a Goroutine ---
	// The consumer drains the contact event queue and performs the actual
	// email sends, so a slow SMTP relay never blocks a request.
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for contact events...")
		messageHandler := func(msg amqp.Delivery) error {
			var contact models.Contact
			if err := json.Unmarshal(msg.Body, &contact); err != nil {
				log.Printf("Dropping malformed contact event (Tag: %d): %v", msg.DeliveryTag, err)
				return nil // Ack it; a malformed event will never parse on retry
			}
			return contactService.SendNotifications(&contact)
		}
		if consumerErr := mqClient.ConsumeContactEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	// RabbitMQ connection close is handled by defer in main
	log.Println("Server gracefully stopped")
}

// requireConfig reads a required configuration value. Missing values are
// fatal in production; in development the process keeps going so local
// tooling can restart it after the environment is fixed.
func requireConfig(key, appEnv string) string {
	value := viper.GetString(key)
	if value == "" {
		if appEnv == "production" {
			log.Fatalf("%s is not defined in environment variables", key)
		}
		log.Printf("Warning: %s is not defined in environment variables", key)
	}
	return value
}

// seedAdmin ensures an admin account exists when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured. Stands in for an external seed script.
func seedAdmin(authService *services.AuthService) {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return
	}

	adminName := viper.GetString("ADMIN_NAME")
	if adminName == "" {
		adminName = "Admin User"
	}

	if err := authService.EnsureAdmin(adminName, adminEmail, adminPassword); err != nil {
		log.Printf("Error seeding admin user %s: %v", adminEmail, err)
	} else {
		log.Printf("Admin account ensured for %s", adminEmail)
	}
}
