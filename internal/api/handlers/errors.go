package handlers

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/presenters"
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// statusForError maps service sentinels onto HTTP statuses so business-rule
// rejections and missing entities do not all collapse into 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrWalletNotFound),
		errors.Is(err, domain.ErrGiftNotFound),
		errors.Is(err, domain.ErrPackageNotFound),
		errors.Is(err, domain.ErrPurchaseNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientCoins),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrSelfGift),
		errors.Is(err, domain.ErrGiftNameTaken),
		errors.Is(err, domain.ErrGiftAlreadyEnabled),
		errors.Is(err, domain.ErrGiftAlreadyDisabled),
		errors.Is(err, domain.ErrGiftReferenced),
		errors.Is(err, domain.ErrPackageAlreadyEnabled),
		errors.Is(err, domain.ErrPackageAlreadyDisabled),
		errors.Is(err, domain.ErrPackageReferenced),
		errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrCredentialsInvalid):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrPaymentFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError keeps store failures generic on the wire while logging the
// full cause for operators.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := statusForError(err)
	if status == fiber.StatusInternalServerError {
		log.WithError(err).WithField("path", c.Path()).Error(message)
		return presenters.ErrorResponse(c, status, message, nil)
	}
	return presenters.ErrorResponse(c, status, message, err)
}
