package comment

import (
	"context"
	"errors"
	"fmt"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{
		db: db,
	}
}

func (r repository) create(ctx context.Context, comment *model.Comment) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Create(&comment).Error
}

func (r repository) find(ctx context.Context, id uint) (*model.Comment, error) {
	var comment *model.Comment
	err := r.db.
		WithContext(ctx).
		Joins("Author").
		First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("comment not found by id: %d", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %v", err)
	}

	return comment, nil
}

func (r repository) findAllByEvent(ctx context.Context, eventId uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		WithContext(ctx).
		Joins("Author").
		Where("event_id = ?", eventId).
		Order("comments.created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r repository) update(ctx context.Context, comment *model.Comment) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Model(&comment).
		Select("Content").
		Updates(comment).Error
}

func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Delete(&model.Comment{}, id).Error
}
