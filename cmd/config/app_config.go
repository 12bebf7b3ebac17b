package config

import (
	"Livecast-Backend/internal/api/handlers"
	"Livecast-Backend/internal/api/routes"
	"Livecast-Backend/internal/middleware"
	"Livecast-Backend/internal/utils"
	"Livecast-Backend/pkg/coin"
	"Livecast-Backend/pkg/gift"
	"Livecast-Backend/pkg/jwt"
	"Livecast-Backend/pkg/notify"
	"Livecast-Backend/pkg/payment"
	"Livecast-Backend/pkg/user"
	"Livecast-Backend/pkg/wallet"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Notification fan-out. The app keeps serving when redis is down,
	// gift and balance events are just dropped.
	publisher, err := notify.NewRedisPublisher(
		utils.GetConfig("REDIS_ADDR"),
		utils.GetConfig("REDIS_PASSWORD"),
		utils.GetRedisDB(),
	)
	if err != nil {
		log.WithError(err).Warn("redis unreachable, notifications disabled")
		publisher = notify.NewNoopPublisher()
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	walletRepository := wallet.NewWalletRepository(db)
	giftRepository := gift.NewGiftRepository(db)
	coinRepository := coin.NewCoinRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	midtransService := payment.NewMidtransService()
	walletService := wallet.NewWalletService(db, walletRepository, publisher)
	userService := user.NewUserService(db, userRepository, walletRepository, jwtService)
	giftService := gift.NewGiftService(db, giftRepository, walletService, publisher)
	coinService := coin.NewCoinService(db, coinRepository, walletService, walletRepository, midtransService, publisher)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	walletHandler := handlers.NewWalletHandler(walletService, validator)
	giftHandler := handlers.NewGiftHandler(giftService, validator)
	coinHandler := handlers.NewCoinHandler(coinService, validator)
	midtransHandler := handlers.NewMidtransHandler(coinService, midtransService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		WalletHandler:   walletHandler,
		GiftHandler:     giftHandler,
		CoinHandler:     coinHandler,
		MidtransHandler: midtransHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
