package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"mealbot/cmd"
	adapterhttp "mealbot/internal/adapters/in/http"
	"mealbot/internal/adapters/out/postgres/bookingrepo"
	"mealbot/internal/adapters/out/postgres/orderrepo"
	"mealbot/internal/adapters/out/postgres/queuerepo"
	"mealbot/internal/adapters/out/postgres/riderrepo"
	"mealbot/internal/adapters/out/postgres/sessionrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	migrateDB(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager(logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, logger, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		WhatsAppAPIURL:     goDotEnvVariable("WHATSAPP_API_URL"),
		WhatsAppAuthToken:  goDotEnvVariable("WHATSAPP_AUTH_TOKEN"),
		WhatsAppFromNumber: goDotEnvVariable("WHATSAPP_FROM_NUMBER"),
	}

	if raw := goDotEnvVariable("RIDER_CUT_BPS"); raw != "" {
		bps, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			log.Fatalf("Error parsing RIDER_CUT_BPS: %v", err)
		}
		config.RiderCutBps = bps
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func migrateDB(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&queuerepo.EntryDTO{},
		&bookingrepo.BookingDTO{},
		&bookingrepo.PaymentHoldDTO{},
		&riderrepo.RiderDTO{},
		&sessionrepo.SessionDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, logger *slog.Logger, port string) {
	messenger, err := app.CreateMessenger()
	if err != nil {
		log.Fatalf("Error creating WhatsApp client: %v", err)
	}

	server := adapterhttp.NewServer(
		app.CreateBuyerEngine(logger),
		app.CreateRiderRouter(logger),
		app.CreateRiderRepository(),
		messenger,
		app.CreateRegisterRiderCommandHandler(),
		app.CreateGetAllRidersQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
