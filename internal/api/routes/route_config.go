package routes

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/handlers"
	"Livecast-Backend/internal/middleware"
	"Livecast-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	WalletHandler   handlers.WalletHandler
	GiftHandler     handlers.GiftHandler
	CoinHandler     handlers.CoinHandler
	MidtransHandler handlers.MidtransHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Wallet()
	c.Gift()
	c.Coin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Wallet() {
	wallet := c.App.Group("/api/v1/wallets", c.Middleware.AuthMiddleware(c.JWTService))
	{
		wallet.Get("/me", c.WalletHandler.GetBalance)
		wallet.Get("/me/transactions", c.WalletHandler.GetCoinTransactions)
	}

	admin := c.App.Group("/api/v1/admin/wallets",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyRole(domain.RoleAdmin))
	{
		admin.Post("/credit", c.WalletHandler.CreditWallet)
		admin.Post("/debit", c.WalletHandler.DebitWallet)
	}
}

func (c *Config) Gift() {
	gift := c.App.Group("/api/v1/gifts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		gift.Get("", c.GiftHandler.GetGifts)
		gift.Post("/send", c.GiftHandler.SendGift)
	}

	admin := c.App.Group("/api/v1/admin/gifts",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyRole(domain.RoleAdmin))
	{
		admin.Get("", c.GiftHandler.AdminGetGifts)
		admin.Post("", c.GiftHandler.AddGift)
		admin.Patch("", c.GiftHandler.UpdateGift)
		admin.Patch("/:gift_id/enable", c.GiftHandler.EnableGift)
		admin.Patch("/:gift_id/disable", c.GiftHandler.DisableGift)
		admin.Patch("/:gift_id/animated", c.GiftHandler.SetGiftAnimated)
		admin.Delete("/:gift_id", c.GiftHandler.DeleteGift)
	}
}

func (c *Config) Coin() {
	coin := c.App.Group("/api/v1/coins", c.Middleware.AuthMiddleware(c.JWTService))
	{
		coin.Get("/packages", c.CoinHandler.GetCoinPackages)
		coin.Post("/buy", c.CoinHandler.BuyCoins)
		coin.Get("/purchases", c.CoinHandler.GetPurchaseHistory)
	}

	admin := c.App.Group("/api/v1/admin/coins",
		c.Middleware.AuthMiddleware(c.JWTService),
		c.Middleware.OnlyRole(domain.RoleAdmin))
	{
		admin.Get("/packages", c.CoinHandler.AdminGetCoinPackages)
		admin.Post("/packages", c.CoinHandler.AddCoinPackage)
		admin.Patch("/packages", c.CoinHandler.UpdateCoinPackage)
		admin.Patch("/packages/:package_id/enable", c.CoinHandler.EnableCoinPackage)
		admin.Patch("/packages/:package_id/disable", c.CoinHandler.DisableCoinPackage)
		admin.Delete("/packages/:package_id", c.CoinHandler.DeleteCoinPackage)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Post("/webhook/midtrans", c.MidtransHandler.HandleNotification)
}
