package handlers

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/api/presenters"
	"Livecast-Backend/pkg/gift"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GiftHandler interface {
		// User-facing
		GetGifts(c *fiber.Ctx) error
		SendGift(c *fiber.Ctx) error

		// Admin catalog
		AdminGetGifts(c *fiber.Ctx) error
		AddGift(c *fiber.Ctx) error
		UpdateGift(c *fiber.Ctx) error
		EnableGift(c *fiber.Ctx) error
		DisableGift(c *fiber.Ctx) error
		SetGiftAnimated(c *fiber.Ctx) error
		DeleteGift(c *fiber.Ctx) error
	}

	giftHandler struct {
		giftService gift.GiftService
		validator   *validator.Validate
	}
)

func NewGiftHandler(giftService gift.GiftService, validator *validator.Validate) GiftHandler {
	return &giftHandler{
		giftService: giftService,
		validator:   validator,
	}
}

func (h *giftHandler) GetGifts(c *fiber.Ctx) error {
	gifts, err := h.giftService.GetGifts(c.Context(), true)
	if err != nil {
		return respondError(c, domain.MessageFailedGetGifts, err)
	}
	return presenters.SuccessResponse(c, gifts, fiber.StatusOK, domain.MessageSuccessGetGifts)
}

func (h *giftHandler) SendGift(c *fiber.Ctx) error {
	senderID := c.Locals("user_id").(string)

	req := new(domain.SendGiftRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendGift, err)
	}

	result, err := h.giftService.SendGift(c.Context(), *req, senderID)
	if err != nil {
		return respondError(c, domain.MessageFailedSendGift, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessSendGift)
}

func (h *giftHandler) AdminGetGifts(c *fiber.Ctx) error {
	gifts, err := h.giftService.GetGifts(c.Context(), false)
	if err != nil {
		return respondError(c, domain.MessageFailedGetGifts, err)
	}
	return presenters.SuccessResponse(c, gifts, fiber.StatusOK, domain.MessageSuccessGetGifts)
}

func (h *giftHandler) AddGift(c *fiber.Ctx) error {
	req := new(domain.AddGiftRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddGift, err)
	}

	created, err := h.giftService.AddGift(c.Context(), *req)
	if err != nil {
		return respondError(c, domain.MessageFailedAddGift, err)
	}

	return presenters.SuccessResponse(c, created, fiber.StatusCreated, domain.MessageSuccessAddGift)
}

func (h *giftHandler) UpdateGift(c *fiber.Ctx) error {
	req := new(domain.UpdateGiftRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGift, err)
	}

	updated, err := h.giftService.UpdateGift(c.Context(), *req)
	if err != nil {
		return respondError(c, domain.MessageFailedUpdateGift, err)
	}

	return presenters.SuccessResponse(c, updated, fiber.StatusOK, domain.MessageSuccessUpdateGift)
}

func (h *giftHandler) EnableGift(c *fiber.Ctx) error {
	if err := h.giftService.EnableGift(c.Context(), c.Params("gift_id")); err != nil {
		return respondError(c, domain.MessageFailedEnableGift, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEnableGift)
}

func (h *giftHandler) DisableGift(c *fiber.Ctx) error {
	if err := h.giftService.DisableGift(c.Context(), c.Params("gift_id")); err != nil {
		return respondError(c, domain.MessageFailedDisableGift, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDisableGift)
}

func (h *giftHandler) SetGiftAnimated(c *fiber.Ctx) error {
	req := new(domain.SetGiftAnimatedRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateGift, err)
	}

	if err := h.giftService.SetGiftAnimated(c.Context(), c.Params("gift_id"), *req.IsAnimated); err != nil {
		return respondError(c, domain.MessageFailedUpdateGift, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateGift)
}

func (h *giftHandler) DeleteGift(c *fiber.Ctx) error {
	if err := h.giftService.DeleteGift(c.Context(), c.Params("gift_id")); err != nil {
		return respondError(c, domain.MessageFailedDeleteGift, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteGift)
}
