package handlers

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/presenters"
	"Livecast-Backend/pkg/coin"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CoinHandler interface {
		// User-facing
		GetCoinPackages(c *fiber.Ctx) error
		BuyCoins(c *fiber.Ctx) error
		GetPurchaseHistory(c *fiber.Ctx) error

		// Admin catalog
		AdminGetCoinPackages(c *fiber.Ctx) error
		AddCoinPackage(c *fiber.Ctx) error
		UpdateCoinPackage(c *fiber.Ctx) error
		EnableCoinPackage(c *fiber.Ctx) error
		DisableCoinPackage(c *fiber.Ctx) error
		DeleteCoinPackage(c *fiber.Ctx) error
	}

	coinHandler struct {
		coinService coin.CoinService
		validator   *validator.Validate
	}
)

func NewCoinHandler(coinService coin.CoinService, validator *validator.Validate) CoinHandler {
	return &coinHandler{
		coinService: coinService,
		validator:   validator,
	}
}

func (h *coinHandler) GetCoinPackages(c *fiber.Ctx) error {
	packages, err := h.coinService.GetCoinPackages(c.Context(), true)
	if err != nil {
		return respondError(c, domain.MessageFailedGetCoinPackages, err)
	}
	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetCoinPackages)
}

func (h *coinHandler) BuyCoins(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.BuyCoinRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBuyCoins, err)
	}

	res, err := h.coinService.BuyCoins(c.Context(), *req, userID)
	if err != nil {
		return respondError(c, domain.MessageFailedBuyCoins, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessBuyCoins)
}

func (h *coinHandler) GetPurchaseHistory(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	history, err := h.coinService.GetPurchaseHistory(c.Context(), userID)
	if err != nil {
		return respondError(c, domain.MessageFailedGetPurchaseHistory, err)
	}
	return presenters.SuccessResponse(c, history, fiber.StatusOK, domain.MessageSuccessGetPurchaseHistory)
}

func (h *coinHandler) AdminGetCoinPackages(c *fiber.Ctx) error {
	packages, err := h.coinService.GetCoinPackages(c.Context(), false)
	if err != nil {
		return respondError(c, domain.MessageFailedGetCoinPackages, err)
	}
	return presenters.SuccessResponse(c, packages, fiber.StatusOK, domain.MessageSuccessGetCoinPackages)
}

func (h *coinHandler) AddCoinPackage(c *fiber.Ctx) error {
	req := new(domain.AddCoinPackageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddCoinPackage, err)
	}

	created, err := h.coinService.AddCoinPackage(c.Context(), *req)
	if err != nil {
		return respondError(c, domain.MessageFailedAddCoinPackage, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessAddCoinPackage)
}

func (h *coinHandler) UpdateCoinPackage(c *fiber.Ctx) error {
	req := new(domain.UpdateCoinPackageRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateCoinPackage, err)
	}

	updated, err := h.coinService.UpdateCoinPackage(c.Context(), *req)
	if err != nil {
		return respondError(c, domain.MessageFailedUpdateCoinPackage, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateCoinPackage)
}

func (h *coinHandler) EnableCoinPackage(c *fiber.Ctx) error {
	if err := h.coinService.EnableCoinPackage(c.Context(), c.Params("package_id")); err != nil {
		return respondError(c, domain.MessageFailedEnableCoinPackage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEnableCoinPackage)
}

func (h *coinHandler) DisableCoinPackage(c *fiber.Ctx) error {
	if err := h.coinService.DisableCoinPackage(c.Context(), c.Params("package_id")); err != nil {
		return respondError(c, domain.MessageFailedDisableCoinPackage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDisableCoinPackage)
}

func (h *coinHandler) DeleteCoinPackage(c *fiber.Ctx) error {
	if err := h.coinService.DeleteCoinPackage(c.Context(), c.Params("package_id")); err != nil {
		return respondError(c, domain.MessageFailedDeleteCoinPackage, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCoinPackage)
}
