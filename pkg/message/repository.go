package message

import (
	"context"

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

func (r repository) create(ctx context.Context, message *model.Message) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Create(&message).Error
}

func (r repository) findAllByGroup(ctx context.Context, groupId uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		WithContext(ctx).
		Joins("Author").
		Where("group_id = ?", groupId).
		Order("messages.created_at desc").
		Find(&messages).Error
	return messages, err
}
