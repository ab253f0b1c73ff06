package comment

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
)

func NewService(commentRepository commentRepository, eventService eventService) *Service {
	return &Service{
		commentRepository: commentRepository,
		eventService:      eventService,
	}
}

type commentRepository interface {
	create(ctx context.Context, comment *model.Comment) error
	find(ctx context.Context, id uint) (*model.Comment, error)
	findAllByEvent(ctx context.Context, eventId uint) ([]model.Comment, error)
	update(ctx context.Context, comment *model.Comment) error
	delete(ctx context.Context, id uint) error
}

type eventService interface {
	Find(ctx context.Context, id uint) (*model.Event, error)
	FindMembership(ctx context.Context, eventId, userId uint) (*model.EventMembership, error)
}

type Service struct {
	commentRepository commentRepository
	eventService      eventService
}

// Create a comment on an event. Only members of the event can comment.
func (s *Service) Create(ctx context.Context, author *model.User, eventId uint, content string) (*model.Comment, error) {
	if _, err := s.eventService.Find(ctx, eventId); err != nil {
		return nil, err
	}

	if _, err := s.eventService.FindMembership(ctx, eventId, author.ID); err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewForbidden("user %d isn't a member of event %d", author.ID, eventId)
		}
		return nil, err
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: author.ID,
		EventID:  eventId,
	}

	if err := s.commentRepository.create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *Service) FindAllByEvent(ctx context.Context, eventId uint) ([]model.Comment, error) {
	if _, err := s.eventService.Find(ctx, eventId); err != nil {
		return nil, err
	}
	return s.commentRepository.findAllByEvent(ctx, eventId)
}

// Update a comment. Only the author can edit their comment.
func (s *Service) Update(ctx context.Context, actor *model.User, id uint, content string) (*model.Comment, error) {
	comment, err := s.commentRepository.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != actor.ID {
		return nil, errdef.NewForbidden("only the author of comment %d can edit it", id)
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepository.update(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Delete a comment. The author can delete their own comment, and the event's creator can moderate
// any comment on their event.
func (s *Service) Delete(ctx context.Context, actor *model.User, id uint) error {
	comment, err := s.commentRepository.find(ctx, id)
	if err != nil {
		return err
	}

	if comment.AuthorID != actor.ID {
		event, err := s.eventService.Find(ctx, comment.EventID)
		if err != nil {
			return err
		}
		if event.CreatorID != actor.ID {
			return errdef.NewForbidden("only the author or the event's creator can delete comment %d", id)
		}
	}

	return s.commentRepository.delete(ctx, id)
}

// validateContent bounds content to 1..1000 characters. Characters, not bytes, so multibyte text
// isn't cut short. Whitespace-only content counts as empty.
func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errdef.NewBadRequest("content can't be empty")
	}
	if utf8.RuneCountInString(content) > 1000 {
		return errdef.NewBadRequest("content can't exceed 1000 characters")
	}
	return nil
}
