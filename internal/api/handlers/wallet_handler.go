package handlers

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/presenters"
	"Livecast-Backend/pkg/wallet"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	WalletHandler interface {
		GetBalance(c *fiber.Ctx) error
		GetCoinTransactions(c *fiber.Ctx) error
		CreditWallet(c *fiber.Ctx) error
		DebitWallet(c *fiber.Ctx) error
	}

	walletHandler struct {
		walletService wallet.WalletService
		validator     *validator.Validate
	}
)

func NewWalletHandler(walletService wallet.WalletService, validator *validator.Validate) WalletHandler {
	return &walletHandler{
		walletService: walletService,
		validator:     validator,
	}
}

func (h *walletHandler) GetBalance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	balance, err := h.walletService.GetBalance(c.Context(), userID)
	if err != nil {
		return respondError(c, domain.MessageFailedGetBalance, err)
	}

	return presenters.SuccessResponse(c, balance, fiber.StatusOK, domain.MessageSuccessGetBalance)
}

func (h *walletHandler) GetCoinTransactions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	transactions, count, err := h.walletService.GetCoinTransactionHistory(c.Context(), userID, page, limit)
	if err != nil {
		return respondError(c, domain.MessageFailedGetCoinHistory, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"transactions": transactions,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetCoinHistory)
}

// CreditWallet is an admin adjustment path; regular credits come from the
// purchase processor.
func (h *walletHandler) CreditWallet(c *fiber.Ctx) error {
	req := new(domain.AdjustWalletRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreditWallet, err)
	}

	balanceAfter, err := h.walletService.Credit(c.Context(), req.UserID, req.Amount, req.Type, parseReference(req.ReferenceID))
	if err != nil {
		return respondError(c, domain.MessageFailedCreditWallet, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"balance_after": balanceAfter}, fiber.StatusOK, domain.MessageSuccessCreditWallet)
}

func (h *walletHandler) DebitWallet(c *fiber.Ctx) error {
	req := new(domain.AdjustWalletRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDebitWallet, err)
	}

	balanceAfter, err := h.walletService.Debit(c.Context(), req.UserID, req.Amount, req.Type, parseReference(req.ReferenceID))
	if err != nil {
		return respondError(c, domain.MessageFailedDebitWallet, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"balance_after": balanceAfter}, fiber.StatusOK, domain.MessageSuccessDebitWallet)
}

func parseReference(referenceID string) *uuid.UUID {
	if referenceID == "" {
		return nil
	}
	parsed, err := uuid.Parse(referenceID)
	if err != nil {
		return nil
	}
	return &parsed
}
