package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"thunderbuddy/api/handlers"
	"thunderbuddy/api/routes"
	"thunderbuddy/config"
	"thunderbuddy/db"
	"thunderbuddy/services"
	"thunderbuddy/store"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	// .env опционален, секреты могут прийти из окружения
	_ = godotenv.Load()

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	conf := config.AppConfig
	log.Println("Starting server...")

	manager, err := db.Connect(conf)
	if err != nil {
		log.Fatal("Failed to connect to the database: ", err)
	}
	defer manager.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis нужен только рейт-лимитеру, без него лимиты выключены
	redisClient, err := services.NewRedisClient(conf.Redis)
	if err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	wsManager := services.NewWSConnManager()
	defer wsManager.CloseAll()

	notificationStore := store.NewNotificationStore(manager)

	// Брокер тоже опционален: без него уведомления пушатся напрямую
	var broker *services.Broker
	if conf.RabbitMQ.URL != "" {
		broker, err = services.ConnectBroker(conf.RabbitMQ.URL)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, direct notification delivery: %v", err)
			broker = nil
		} else {
			defer broker.Close()
		}
	}

	var notificationService *services.NotificationService
	if broker != nil {
		notificationService = services.NewNotificationService(notificationStore, broker, wsManager)
		err = broker.StartConsumer(ctx, "notification_delivery", func(event services.NotificationEvent) {
			notificationService.Deliver(ctx, event)
		})
		if err != nil {
			log.Fatal("Failed to start notification consumer: ", err)
		}
	} else {
		notificationService = services.NewNotificationService(notificationStore, nil, wsManager)
	}

	userStore := store.NewUserStore(manager)
	friendshipStore := store.NewFriendshipStore(manager)
	groupStore := store.NewGroupStore(manager)

	jwtSecret := []byte(conf.Auth.JWTSecret)
	tokenTTL := time.Duration(conf.Auth.TokenTTLMins) * time.Minute

	userService := services.NewUserService(userStore, jwtSecret, tokenTTL)
	friendshipService := services.NewFriendshipService(friendshipStore, userStore, notificationService)
	groupService := services.NewGroupService(groupStore)

	weatherTimeout := time.Duration(conf.Weather.TimeoutSeconds) * time.Second
	weatherService := services.NewWeatherService(conf.Weather.APIKey, "", weatherTimeout)

	router := gin.Default()
	routes.PublicApi(router, &routes.Deps{
		Auth:          handlers.NewAuthHandler(userService),
		Users:         handlers.NewUserHandler(userService),
		Friends:       handlers.NewFriendHandler(friendshipService),
		Groups:        handlers.NewGroupHandler(groupService),
		Notifications: handlers.NewNotificationHandler(notificationService),
		Weather:       handlers.NewWeatherHandler(weatherService),
		WS:            handlers.NewWSHandler(wsManager),
		JWTSecret:     jwtSecret,
		Redis:         redisClient,
	})

	addr := fmt.Sprintf("%s:%d", conf.Backend.Host, conf.Backend.Port)
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatal("Server stopped: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
}
