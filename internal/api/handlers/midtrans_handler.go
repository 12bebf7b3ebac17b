package handlers

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/presenters"
	"Livecast-Backend/pkg/coin"
	"Livecast-Backend/pkg/payment"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type (
	MidtransHandler interface {
		HandleNotification(c *fiber.Ctx) error
	}

	midtransHandler struct {
		coinService     coin.CoinService
		midtransService payment.MidtransService
	}

	midtransNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
	}
)

func NewMidtransHandler(coinService coin.CoinService, midtransService payment.MidtransService) MidtransHandler {
	return &midtransHandler{
		coinService:     coinService,
		midtransService: midtransService,
	}
}

// HandleNotification processes payment gateway callbacks. The status in the
// callback body is advisory only; the authoritative status is re-fetched from
// the gateway before any coins are credited.
func (h *midtransHandler) HandleNotification(c *fiber.Ctx) error {
	notif := new(midtransNotification)
	if err := c.BodyParser(notif); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if notif.OrderID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, nil)
	}

	status, err := h.midtransService.CheckTransactionStatus(c.Context(), notif.OrderID)
	if err != nil {
		log.WithError(err).WithField("order_id", notif.OrderID).Error("failed to verify transaction status")
		return presenters.ErrorResponse(c, fiber.StatusBadGateway, domain.MessageFailedProcessRequest, err)
	}

	switch status {
	case domain.PurchaseStatusSettled:
		result, err := h.coinService.ApplyPurchase(c.Context(), notif.OrderID)
		if err != nil {
			return respondError(c, domain.MessageFailedBuyCoins, err)
		}
		if result.AlreadyProcessed {
			return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessagePurchaseAlreadyProcessed)
		}
		return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessBuyCoins)
	case domain.PurchaseStatusFailed:
		if err := h.coinService.MarkPurchaseFailed(c.Context(), notif.OrderID); err != nil {
			return respondError(c, domain.MessageFailedProcessRequest, err)
		}
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessagePurchaseMarkedFailed)
	default:
		// Still pending at the gateway, nothing to apply yet.
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessagePurchasePending)
	}
}
