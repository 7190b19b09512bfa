package controller

import (
	"fmt"

	"rgpt-backend/internal/config"
	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/pkg/serverutils"
	"rgpt-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	GoogleLogin(ctx *fiber.Ctx) error
	OAuthRedirect(ctx *fiber.Ctx) error
	OAuthCallback(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service   service.IAuthService
	clientURL string
}

func NewAuthController(service service.IAuthService, cfg *config.Config) IAuthController {
	return &authController{
		service:   service,
		clientURL: cfg.App.ClientURL,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/google", c.GoogleLogin)
	h.Get("/me", serverutils.JwtMiddleware, c.Me)
	h.Get("/:provider", c.OAuthRedirect)
	h.Get("/:provider/callback", c.OAuthCallback)
}

// GoogleLogin is the SPA path: the frontend already holds a Google id_token
// and trades it for a backend token.
func (c *authController) GoogleLogin(ctx *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.LoginWithGoogle(ctx.Context(), req.Token)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *authController) OAuthRedirect(ctx *fiber.Ctx) error {
	url, err := c.service.GetLoginURL(ctx.Params("provider"))
	if err != nil {
		return err
	}
	return ctx.Redirect(url)
}

func (c *authController) OAuthCallback(ctx *fiber.Ctx) error {
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}

	res, err := c.service.HandleCallback(ctx.Context(), ctx.Params("provider"), code)
	if err != nil {
		return err
	}

	// Hand the token back to the frontend through the redirect URL.
	return ctx.Redirect(fmt.Sprintf("%s/auth/callback?token=%s", c.clientURL, res.AccessToken))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	res, err := c.service.Me(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}
