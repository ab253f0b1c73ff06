package event

import (
	"context"
	"time"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
)

func NewService(eventRepository eventRepository, groupService groupService) *Service {
	return &Service{
		eventRepository: eventRepository,
		groupService:    groupService,
	}
}

type eventRepository interface {
	create(ctx context.Context, event *model.Event) error
	find(ctx context.Context, id uint) (*model.Event, error)
	findAll(ctx context.Context, filter Filter, now time.Time) ([]model.Event, int64, error)
	findAllByGroup(ctx context.Context, groupId uint) ([]model.Event, error)
	update(ctx context.Context, event *model.Event) error
	delete(ctx context.Context, id uint) error
	findMembership(ctx context.Context, eventId, userId uint) (*model.EventMembership, error)
	findMembers(ctx context.Context, eventId uint) ([]model.EventMembership, error)
	join(ctx context.Context, eventId, userId uint, now time.Time) error
	leave(ctx context.Context, eventId, userId uint) error
}

type groupService interface {
	Find(ctx context.Context, id uint) (*model.Group, error)
	FindMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error)
}

type Service struct {
	eventRepository eventRepository
	groupService    groupService
}

func (s *Service) Create(ctx context.Context, creator *model.User, groupId uint, title, description string, startTime, endTime time.Time, location string, latitude, longitude float64, maxMembers int, price float64) (*model.Event, error) {
	if _, err := s.groupService.Find(ctx, groupId); err != nil {
		return nil, err
	}

	if _, err := s.groupService.FindMembership(ctx, groupId, creator.ID); err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewForbidden("user %d isn't a member of group %d", creator.ID, groupId)
		}
		return nil, err
	}

	if err := validateTimes(startTime, endTime, time.Now()); err != nil {
		return nil, err
	}
	if maxMembers < 0 {
		return nil, errdef.NewBadRequest("maxMembers can't be negative")
	}

	event := &model.Event{
		Title:       title,
		Description: description,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    location,
		Latitude:    latitude,
		Longitude:   longitude,
		MaxMembers:  maxMembers,
		Price:       price,
		CreatorID:   creator.ID,
		GroupID:     groupId,
	}

	if err := s.eventRepository.create(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) Find(ctx context.Context, id uint) (*model.Event, error) {
	return s.eventRepository.find(ctx, id)
}

// Filter narrows the global event listing. Zero values mean no constraint.
type Filter struct {
	GroupID  uint
	Query    string
	Location string
	Upcoming bool
	Page     int
	Limit    int
}

// Page of events
// swagger:model
type Page struct {
	Events     []model.Event `json:"events"`
	Pagination Pagination    `json:"pagination"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// FindAll returns a page of events across all groups. Query and location match case-insensitively,
// upcoming restricts to events that haven't started yet and flips the order to soonest first.
func (s *Service) FindAll(ctx context.Context, filter Filter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	events, total, err := s.eventRepository.findAll(ctx, filter, time.Now())
	if err != nil {
		return nil, err
	}

	pages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &Page{
		Events: events,
		Pagination: Pagination{
			Total: total,
			Pages: pages,
			Page:  filter.Page,
			Limit: filter.Limit,
		},
	}, nil
}

func (s *Service) FindAllByGroup(ctx context.Context, groupId uint) ([]model.Event, error) {
	if _, err := s.groupService.Find(ctx, groupId); err != nil {
		return nil, err
	}
	return s.eventRepository.findAllByGroup(ctx, groupId)
}

// Update changes the event's details. Only the creator may update an event, and once the event
// has started its start and end times are frozen.
func (s *Service) Update(ctx context.Context, actor *model.User, id uint, title, description string, startTime, endTime time.Time, location string, latitude, longitude float64, maxMembers int, price float64) (*model.Event, error) {
	event, err := s.eventRepository.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.CreatorID != actor.ID {
		return nil, errdef.NewForbidden("only the creator of event %d can update it", id)
	}

	if event.Started(time.Now()) {
		if !startTime.Equal(event.StartTime) || !endTime.Equal(event.EndTime) {
			return nil, errdef.NewConflict("start and end times can't change once event %d has started", id)
		}
	} else if err := validateTimes(startTime, endTime, time.Now()); err != nil {
		return nil, err
	}
	if maxMembers < 0 {
		return nil, errdef.NewBadRequest("maxMembers can't be negative")
	}

	event.Title = title
	event.Description = description
	event.StartTime = startTime
	event.EndTime = endTime
	event.Location = location
	event.Latitude = latitude
	event.Longitude = longitude
	event.MaxMembers = maxMembers
	event.Price = price

	if err := s.eventRepository.update(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uint) error {
	event, err := s.eventRepository.find(ctx, id)
	if err != nil {
		return err
	}

	if event.CreatorID != actor.ID {
		return errdef.NewForbidden("only the creator of event %d can delete it", id)
	}

	return s.eventRepository.delete(ctx, id)
}

func (s *Service) FindMembers(ctx context.Context, eventId uint) ([]model.EventMembership, error) {
	if _, err := s.eventRepository.find(ctx, eventId); err != nil {
		return nil, err
	}
	return s.eventRepository.findMembers(ctx, eventId)
}

// FindMembership returns the user's membership in the event, or a not found error if the user
// hasn't joined it.
func (s *Service) FindMembership(ctx context.Context, eventId, userId uint) (*model.EventMembership, error) {
	return s.eventRepository.findMembership(ctx, eventId, userId)
}

func (s *Service) Join(ctx context.Context, actor *model.User, eventId uint) error {
	return s.eventRepository.join(ctx, eventId, actor.ID, time.Now())
}

func (s *Service) Leave(ctx context.Context, actor *model.User, eventId uint) error {
	event, err := s.eventRepository.find(ctx, eventId)
	if err != nil {
		return err
	}

	if _, err := s.eventRepository.findMembership(ctx, eventId, actor.ID); err != nil {
		if errdef.IsNotFound(err) {
			return errdef.NewBadRequest("user %d isn't a member of event %d", actor.ID, eventId)
		}
		return err
	}

	if event.CreatorID == actor.ID {
		return errdef.NewConflict("creators can't leave their own event")
	}

	if event.Started(time.Now()) {
		return errdef.NewConflict("event %d has already started", eventId)
	}

	return s.eventRepository.leave(ctx, eventId, actor.ID)
}

func validateTimes(startTime, endTime time.Time, now time.Time) error {
	if !startTime.After(now) {
		return errdef.NewBadRequest("startTime must be in the future")
	}
	if !endTime.After(startTime) {
		return errdef.NewBadRequest("endTime must be after startTime")
	}
	return nil
}
