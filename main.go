package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"lapakku/initializers"
	"lapakku/routes"
)

func main() {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load environment variables: %v", err)
	}

	db, err := initializers.ConnectDB(&config)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ClientOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "ok"})
	})

	routes.SetupRoutes(app, db, &config)
	routes.NotFoundRoute(app)

	log.Fatal(app.Listen(":" + config.ServerPort))
}
