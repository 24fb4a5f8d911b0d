package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/enfantsenjoie/eejsite/internal/pkg/cache"
	"github.com/enfantsenjoie/eejsite/internal/pkg/constants"
	"github.com/enfantsenjoie/eejsite/internal/pkg/database"
	"github.com/enfantsenjoie/eejsite/internal/pkg/env"
	"github.com/enfantsenjoie/eejsite/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// Define possible base paths
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/eejsite to project root
		"../../../", // Fallback
	}

	// Find the correct base path
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "views"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}

	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		Views:     html.New(basePath+"views", ".html"),
		BodyLimit: 52428800, // 50 MiB, covers media uploads
	})

	// ignore and cache favicon
	faviconConf := favicon.Config{URL: "/favicon.ico"}
	if iconPath := basePath + "public/assets/icons/favicon.ico"; fileExists(iconPath) {
		faviconConf.File = iconPath
		faviconConf.CacheControl = "public, max-age=604800"
	}
	app.Use(favicon.New(faviconConf))

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "change-me"),
		},
	}), monitor.New())

	// static files
	app.Static("/", basePath+"public/assets", fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	// uploaded media
	app.Static(constants.MediaRoute, basePath+constants.MediaPath, fiber.Static{
		CacheDuration: 10 * time.Second,
		Compress:      false,
		MaxAge:        604800, // 7 days
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
