package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	config "github.com/maheshrc27/socialflow/configs"
	"github.com/maheshrc27/socialflow/internal/ai"
	"github.com/maheshrc27/socialflow/internal/api/handlers"
	"github.com/maheshrc27/socialflow/internal/api/middleware"
	job "github.com/maheshrc27/socialflow/internal/jobs"
	"github.com/maheshrc27/socialflow/internal/queue"
	"github.com/maheshrc27/socialflow/internal/repository"
	"github.com/maheshrc27/socialflow/internal/service"
	"github.com/maheshrc27/socialflow/internal/storage"
	"github.com/maheshrc27/socialflow/internal/wizard"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisURI})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	generator, err := ai.NewGeminiGenerator(context.Background(), *cfg)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	kv := storage.NewRedisKV(rdb)

	userRepo := repository.NewUserRepository(kv)
	creditRepo := repository.NewCreditRepository(kv)
	postRepo := repository.NewPostRepository(kv)
	ideaRepo := repository.NewIdeaRepository(kv)
	connectionRepo := repository.NewConnectionRepository(kv)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	creditService := service.NewCreditService(creditRepo)
	assetService := service.NewAssetService(*cfg)
	publishService := service.NewPublishService(postRepo, ideaRepo)
	connectionService := service.NewConnectionService(connectionRepo)

	generationWizard := wizard.New(generator, creditService, publishService, connectionService, assetService)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Post("/auth/register", auth.Register)
	app.Post("/auth/login", auth.Login)
	app.Post("/auth/demo", auth.DemoLogin)
	app.Post("/auth/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)

	credits := handlers.NewCreditHandler(creditService)
	api.Get("/credits", credits.GetBalance)
	api.Post("/credits/topup", credits.TopUp)

	wiz := handlers.NewWizardHandler(generationWizard, client)
	api.Get("/wizard", wiz.GetState)
	api.Post("/wizard/scan", wiz.Scan)
	api.Post("/wizard/skip", wiz.Skip)
	api.Post("/wizard/brand", wiz.SetBrand)
	api.Post("/wizard/back", wiz.Back)
	api.Post("/wizard/generate", wiz.Generate)
	api.Post("/wizard/caption", wiz.EditCaption)
	api.Post("/wizard/image", wiz.RegenerateImage)
	api.Post("/wizard/select", wiz.ToggleSelect)
	api.Post("/wizard/save", wiz.SaveIdea)
	api.Post("/wizard/finalize", wiz.Finalize)

	post := handlers.NewPostHandler(publishService)
	api.Get("/posts", post.ListPosts)

	idea := handlers.NewIdeaHandler(publishService)
	api.Get("/ideas", idea.ListIdeas)
	api.Post("/ideas/remove", idea.RemoveIdea)
	api.Post("/ideas/publish", idea.PublishIdea)

	connection := handlers.NewConnectionHandler(connectionService)
	api.Get("/connections", connection.ListConnections)
	api.Post("/connections/toggle", connection.ToggleConnection)

	//queue
	queueW := queue.NewQueue(postRepo)

	// cron jobs
	sweepJob := job.NewScheduleSweepJob(userRepo, postRepo, queueW)

	c := cron.New()
	c.AddFunc("@every 00h10m00s", sweepJob.Sweep)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
