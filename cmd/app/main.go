package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"dispatch/cmd"
	httpserver "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)

	publisher, err := kafka.NewSaramaEventPublisher(
		strings.Split(configs.KafkaBrokers, ","),
		configs.KafkaEventsTopic,
	)
	if err != nil {
		log.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, publisher)

	jobManager := jobs.NewJobManager(
		app.CreateDispatchOutboxCommandHandler(),
		app.CreateExpireOffersCommandHandler(),
		configs.OutboxBatchSize,
		time.Duration(configs.OfferTTLSeconds)*time.Second,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		KafkaBrokers:     goDotEnvVariable("KAFKA_BROKERS"),
		KafkaEventsTopic: goDotEnvVariable("KAFKA_EVENTS_TOPIC"),
		OfferTTLSeconds:  goDotEnvIntVariable("OFFER_TTL_SECONDS", 120),
		OutboxBatchSize:  goDotEnvIntVariable("OUTBOX_BATCH_SIZE", 100),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid integer value for %s: %v", key, err)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&driverrepo.DriverDTO{},
		&outboxrepo.EventDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpserver.NewServer(httpserver.ServerHandlers{
		CreateOrder:          app.CreateCreateOrderCommandHandler(),
		AssignOrder:          app.CreateAssignOrderCommandHandler(),
		AutoAssignOrder:      app.CreateAutoAssignOrderCommandHandler(),
		AcceptOrder:          app.CreateAcceptOrderCommandHandler(),
		RejectOrder:          app.CreateRejectOrderCommandHandler(),
		PickupOrder:          app.CreatePickupOrderCommandHandler(),
		DeliverOrder:         app.CreateDeliverOrderCommandHandler(),
		CancelOrder:          app.CreateCancelOrderCommandHandler(),
		CreateDriver:         app.CreateCreateDriverCommandHandler(),
		UpdateDriverLocation: app.CreateUpdateDriverLocationCommandHandler(),
		StartShift:           app.CreateStartShiftCommandHandler(),
		EndShift:             app.CreateEndShiftCommandHandler(),
		StartBreak:           app.CreateStartBreakCommandHandler(),
		EndBreak:             app.CreateEndBreakCommandHandler(),
		GetNearbyDrivers:     app.CreateGetNearbyDriversQueryHandler(),
		GetOrders:            app.CreateGetOrdersQueryHandler(),
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
