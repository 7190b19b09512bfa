package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/pkg/serverutils"
	"rgpt-backend/internal/service"
	"rgpt-backend/pkg/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
	SendStream(ctx *fiber.Ctx) error
	Instruction(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IChatMessageService
	persona        chat.Persona
	rateLimit      fiber.Handler
}

func NewMessageController(messageService service.IChatMessageService, persona chat.Persona, rateLimit fiber.Handler) IMessageController {
	if rateLimit == nil {
		rateLimit = func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	return &messageController{
		messageService: messageService,
		persona:        persona,
		rateLimit:      rateLimit,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Get("/instruction", serverutils.JwtMiddleware, c.Instruction)
	h.Get("/sessions/:id/messages", c.List)
	h.Post("/sessions/:id/messages", c.rateLimit, c.Send)
	h.Post("/sessions/:id/messages/stream", c.rateLimit, c.SendStream)
}

func (c *messageController) List(ctx *fiber.Ctx) error {
	userId := optionalUserId(ctx)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	res, err := c.messageService.List(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list messages", res))
}

// Send handles the one-shot exchange: the full reply comes back in a single
// JSON body. Uploads arrive as a multipart "file" part next to the text.
func (c *messageController) Send(ctx *fiber.Ctx) error {
	userId := optionalUserId(ctx)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	input, err := parseSendInput(ctx)
	if err != nil {
		return err
	}

	res, err := c.messageService.Send(ctx.Context(), userId, sessionId, input, nil)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success send message", res))
}

// SendStream delivers the reply incrementally over SSE:
//   - event: delta (repeated) with partial text
//   - event: done (once) with the persisted exchange
//   - event: error (once) when the exchange fails
func (c *messageController) SendStream(ctx *fiber.Ctx) error {
	userId := optionalUserId(ctx)

	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid session id"))
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	input := &service.SendMessageInput{Text: req.Text}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		// The handler has already returned by the time this runs, so the
		// request context is not reused here.
		onDelta := func(chunk string) {
			writeSSE(w, "delta", fiber.Map{"text": chunk})
		}

		res, err := c.messageService.Send(context.Background(), userId, sessionId, input, onDelta)
		if err != nil {
			writeSSE(w, "error", fiber.Map{"message": err.Error()})
			return
		}
		writeSSE(w, "done", res)
	}))

	return nil
}

func (c *messageController) Instruction(ctx *fiber.Ctx) error {
	res := &dto.InstructionResponse{SystemInstruction: c.persona.Instruction}
	return ctx.JSON(serverutils.SuccessResponse("Success show instruction", res))
}

func parseSendInput(ctx *fiber.Ctx) (*service.SendMessageInput, error) {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return nil, err
	}

	input := &service.SendMessageInput{Text: req.Text}

	fileHeader, err := ctx.FormFile("file")
	if err != nil || fileHeader == nil {
		return input, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	input.Upload = data
	input.UploadName = fileHeader.Filename
	return input, nil
}

func writeSSE(w *bufio.Writer, event string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	w.Flush()
}
