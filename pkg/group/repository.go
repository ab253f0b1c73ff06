package group

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
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

func (r repository) create(ctx context.Context, group *model.Group) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	// the creator becomes the group's first admin in the same transaction, a group must never
	// exist without one
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		membership := &model.GroupMembership{
			GroupID:  group.ID,
			UserID:   group.CreatorID,
			Role:     model.RoleAdmin,
			JoinedAt: time.Now(),
		}
		return tx.Create(membership).Error
	})
}

func (r repository) find(ctx context.Context, id uint) (*model.Group, error) {
	var group *model.Group
	err := r.db.
		WithContext(ctx).
		Joins("Creator").
		First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("group not found by id: %d", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find group: %v", err)
	}

	return group, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.
		WithContext(ctx).
		Joins("Creator").
		Order("groups.created_at desc").
		Find(&groups).Error
	return groups, err
}

func (r repository) update(ctx context.Context, group *model.Group) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Model(&group).
		Select("Name", "Description", "Category", "Location", "Latitude", "Longitude").
		Updates(group).Error
}

// delete removes the group and everything that only exists in relation to it. Deleting the
// group's events has to transitively remove each event's memberships and comments, otherwise
// those rows are orphaned.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group *model.Group
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errdef.NewNotFound("group not found by id: %d", id)
		}
		if err != nil {
			return err
		}

		var eventIds []uint
		err = tx.
			Model(&model.Event{}).
			Where("group_id = ?", id).
			Pluck("id", &eventIds).Error
		if err != nil {
			return err
		}

		if len(eventIds) > 0 {
			if err := tx.Where("event_id IN ?", eventIds).Delete(&model.EventMembership{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id IN ?", eventIds).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("group_id = ?", id).Delete(&model.Event{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("group_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&model.GroupMembership{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, id).Error
	})
}

func (r repository) findMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error) {
	var membership *model.GroupMembership
	err := r.db.
		WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("user %d isn't a member of group %d", userId, groupId)
	}
	return membership, err
}

func (r repository) findMembers(ctx context.Context, groupId uint) ([]model.GroupMembership, error) {
	var memberships []model.GroupMembership
	err := r.db.
		WithContext(ctx).
		Joins("User").
		Where("group_id = ?", groupId).
		Order("role asc, joined_at asc").
		Find(&memberships).Error
	return memberships, err
}

func (r repository) addMember(ctx context.Context, groupId, userId uint, role model.Role) error {
	ctx = context.WithoutCancel(ctx)

	membership := &model.GroupMembership{
		GroupID:  groupId,
		UserID:   userId,
		Role:     role,
		JoinedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(membership).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewConflict("user %d has already joined group %d", userId, groupId)
	}
	return err
}

func (r repository) updateMemberRole(ctx context.Context, groupId, userId uint, role model.Role) error {
	ctx = context.WithoutCancel(ctx)

	db := r.db.
		WithContext(ctx).
		Model(&model.GroupMembership{}).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		Update("role", role)
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected < 1 {
		return errdef.NewNotFound("user %d isn't a member of group %d", userId, groupId)
	}
	return nil
}

// removeMember deletes the target's membership. The admin guard has to run inside the
// transaction holding a lock on the membership row, otherwise a concurrent role change could
// slip in between the check and the delete.
func (r repository) removeMember(ctx context.Context, groupId, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var membership *model.GroupMembership
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("group_id = ? AND user_id = ?", groupId, userId).
			First(&membership).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errdef.NewNotFound("user %d isn't a member of group %d", userId, groupId)
		}
		if err != nil {
			return err
		}

		if membership.Role == model.RoleAdmin {
			return errdef.NewConflict("admins can't be removed from their group")
		}

		return tx.
			Where("group_id = ? AND user_id = ?", groupId, userId).
			Delete(&model.GroupMembership{}).Error
	})
}

// leave deletes the caller's own membership without the admin guard, members may always leave.
func (r repository) leave(ctx context.Context, groupId, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	db := r.db.
		WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupId, userId).
		Delete(&model.GroupMembership{})
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected < 1 {
		return errdef.NewNotFound("user %d isn't a member of group %d", userId, groupId)
	}
	return nil
}
