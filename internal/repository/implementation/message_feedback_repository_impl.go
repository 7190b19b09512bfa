package implementation

import (
	"context"
	"errors"

	"rgpt-backend/internal/entity"
	"rgpt-backend/internal/mapper"
	"rgpt-backend/internal/model"
	"rgpt-backend/internal/repository/contract"
	"rgpt-backend/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageFeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatMapper
}

func NewMessageFeedbackRepository(db *gorm.DB) contract.MessageFeedbackRepository {
	return &MessageFeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *MessageFeedbackRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageFeedbackRepositoryImpl) Upsert(ctx context.Context, feedback *entity.MessageFeedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "message_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "user_id"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}

func (r *MessageFeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MessageFeedback, error) {
	var m model.MessageFeedback
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FeedbackToEntity(&m), nil
}

func (r *MessageFeedbackRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MessageFeedback{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
