package controller

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"rgpt-backend/internal/dto"
	"rgpt-backend/internal/service"
	"rgpt-backend/pkg/chat"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMessageService struct{}

func (stubMessageService) List(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) ([]*dto.MessageResponse, error) {
	return []*dto.MessageResponse{}, nil
}

func (stubMessageService) Send(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID, input *service.SendMessageInput, onDelta func(string)) (*dto.SendMessageResponse, error) {
	return &dto.SendMessageResponse{}, nil
}

func newMessageApp() *fiber.App {
	app := fiber.New()
	c := NewMessageController(stubMessageService{}, chat.DefaultPersona(), nil)
	c.RegisterRoutes(app.Group("/api"))
	return app
}

func bearerToken(t *testing.T, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestInstructionRejectsAnonymous(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newMessageApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/chat/v1/instruction", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInstructionRejectsInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newMessageApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/chat/v1/instruction", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInstructionWithToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newMessageApp()

	req := httptest.NewRequest(fiber.MethodGet, "/api/chat/v1/instruction", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, "test-secret"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "RGPT")
}
