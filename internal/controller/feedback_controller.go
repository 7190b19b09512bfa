package controller

import (
	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/pkg/serverutils"
	"rgpt-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router)
	Rate(ctx *fiber.Ctx) error
}

type feedbackController struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackController(feedbackService service.IFeedbackService) IFeedbackController {
	return &feedbackController{
		feedbackService: feedbackService,
	}
}

func (c *feedbackController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1/messages")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post(":id/feedback", c.Rate)
}

func (c *feedbackController) Rate(ctx *fiber.Ctx) error {
	userId := optionalUserId(ctx)

	messageId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid message id"))
	}

	var req dto.RateMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.feedbackService.Rate(ctx.Context(), userId, messageId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success rate message", res))
}
