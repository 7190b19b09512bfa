package contract

import (
	"context"

	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	// Delete soft-deletes; the row stays in storage.
	Delete(ctx context.Context, id uuid.UUID) error
	// Touch bumps updated_at so the session surfaces in recency ordering.
	Touch(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
