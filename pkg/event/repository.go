package event

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

func (r repository) create(ctx context.Context, event *model.Event) error {
	// only use ctx for values (logging) and not cancellation signals on cud operations for now. ctx
	// cancellation can lead to rollbacks which we should decide individually.
	ctx = context.WithoutCancel(ctx)

	// the creator joins the event in the same transaction, so an event always starts out with one
	// member and the creator counts against the capacity
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// hold the group row so a concurrent group deletion serializes with the insert, otherwise
		// the new event could commit after the deletion plucked the group's event ids and end up
		// orphaned
		var group *model.Group
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&group, event.GroupID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errdef.NewNotFound("group not found by id: %d", event.GroupID)
		}
		if err != nil {
			return err
		}

		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		membership := &model.EventMembership{
			EventID:  event.ID,
			UserID:   event.CreatorID,
			JoinedAt: time.Now(),
		}
		return tx.Create(membership).Error
	})
}

func (r repository) find(ctx context.Context, id uint) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Joins("Creator").
		Joins("Group").
		First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found by id: %d", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find event: %v", err)
	}

	return event, nil
}

// findAll returns a page of events matching the filter plus the total match count for paging.
func (r repository) findAll(ctx context.Context, filter Filter, now time.Time) ([]model.Event, int64, error) {
	db := r.db.WithContext(ctx).Model(&model.Event{})

	if filter.GroupID > 0 {
		db = db.Where("events.group_id = ?", filter.GroupID)
	}
	if filter.Location != "" {
		db = db.Where("events.location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		db = db.Where("events.title ILIKE ? OR events.description ILIKE ?", pattern, pattern)
	}

	// upcoming listings read soonest first, the full history reads newest first
	order := "events.start_time desc"
	if filter.Upcoming {
		db = db.Where("events.start_time >= ?", now)
		order = "events.start_time asc"
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.Event
	err := db.
		Joins("Creator").
		Joins("Group").
		Order(order).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&events).Error
	return events, total, err
}

func (r repository) findAllByGroup(ctx context.Context, groupId uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Joins("Creator").
		Where("group_id = ?", groupId).
		Order("events.start_time asc").
		Find(&events).Error
	return events, err
}

func (r repository) update(ctx context.Context, event *model.Event) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Model(&event).
		Select("Title", "Description", "StartTime", "EndTime", "Location", "Latitude", "Longitude", "MaxMembers", "Price").
		Updates(event).Error
}

// delete removes the event together with its memberships and comments, all in one transaction so
// a partial failure never leaves rows pointing at a missing event.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.EventMembership{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Event{}, id).Error
	})
}

func (r repository) findMembership(ctx context.Context, eventId, userId uint) (*model.EventMembership, error) {
	var membership *model.EventMembership
	err := r.db.
		WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventId, userId).
		First(&membership).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("user %d isn't a member of event %d", userId, eventId)
	}
	return membership, err
}

func (r repository) findMembers(ctx context.Context, eventId uint) ([]model.EventMembership, error) {
	var memberships []model.EventMembership
	err := r.db.
		WithContext(ctx).
		Joins("User").
		Where("event_id = ?", eventId).
		Order("joined_at asc").
		Find(&memberships).Error
	return memberships, err
}

// join adds the user to the event. The event row is locked for the duration of the transaction so
// the member count can't change between the capacity check and the insert, two concurrent joins on
// the last seat serialize and the second one fails.
func (r repository) join(ctx context.Context, eventId, userId uint, now time.Time) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event *model.Event
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, eventId).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errdef.NewNotFound("event not found by id: %d", eventId)
		}
		if err != nil {
			return err
		}

		// membership is checked before the start time so that rejoining always reports the
		// membership, the creator included
		var existing int64
		err = tx.
			Model(&model.EventMembership{}).
			Where("event_id = ? AND user_id = ?", eventId, userId).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return errdef.NewConflict("user %d has already joined event %d", userId, eventId)
		}

		if event.Started(now) {
			return errdef.NewConflict("event %d has already started", eventId)
		}

		if event.MaxMembers > 0 {
			var members int64
			err = tx.
				Model(&model.EventMembership{}).
				Where("event_id = ?", eventId).
				Count(&members).Error
			if err != nil {
				return err
			}
			if members >= int64(event.MaxMembers) {
				return errdef.NewConflict("event %d is full", eventId)
			}
		}

		membership := &model.EventMembership{
			EventID:  eventId,
			UserID:   userId,
			JoinedAt: now,
		}
		return tx.Create(membership).Error
	})
}

func (r repository) leave(ctx context.Context, eventId, userId uint) error {
	ctx = context.WithoutCancel(ctx)

	db := r.db.
		WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventId, userId).
		Delete(&model.EventMembership{})
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected < 1 {
		return errdef.NewNotFound("user %d isn't a member of event %d", userId, eventId)
	}
	return nil
}
