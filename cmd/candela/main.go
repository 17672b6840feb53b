package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/candela/internal/api"
	"github.com/terraincognita07/candela/internal/db"
	"github.com/terraincognita07/candela/internal/services"
)

func main() {
	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	dbPath := getEnv("DB_PATH", filepath.Join("data", "candela.db"))
	port := getEnv("PORT", "8080")
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	digestHour := getEnvInt("DIGEST_HOUR", 8)
	weeklyWeekday := mustParseWeekday(getEnv("WEEKLY_DIGEST_WEEKDAY", "Monday"))

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repos := db.NewRepositories(database)
	acknowledge := services.NewAcknowledgeService(repos.Contacts, repos.Users)
	notifier := services.NewTelegramNotifier(botToken)
	scheduler := services.NewReminderScheduler(repos.Users, repos.Contacts, notifier, location)

	app := fiber.New(fiber.Config{
		AppName:               "Candela",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	handler := api.NewHandler(repos, acknowledge, scheduler, location)
	api.RegisterRoutes(app, handler)

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	if notifier.Enabled() {
		if err := scheduler.Start(lifecycleCtx, digestHour, weeklyWeekday); err != nil {
			log.Fatalf("scheduler init failed: %v", err)
		}
	} else {
		log.Printf("scheduler: TELEGRAM_BOT_TOKEN not set, digest dispatch disabled")
	}

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Candela listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func mustParseWeekday(name string) time.Weekday {
	for weekday := time.Sunday; weekday <= time.Saturday; weekday++ {
		if strings.EqualFold(weekday.String(), strings.TrimSpace(name)) {
			return weekday
		}
	}
	log.Printf("invalid WEEKLY_DIGEST_WEEKDAY %q, falling back to Monday", name)
	return time.Monday
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s %q, falling back to %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
