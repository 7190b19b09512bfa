package contract

import (
	"context"

	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/repository/specification"
)

type MessageFeedbackRepository interface {
	// Upsert keeps at most one rating row per message.
	Upsert(ctx context.Context, feedback *entity.MessageFeedback) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MessageFeedback, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
