package message

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
)

func NewService(messageRepository messageRepository, groupService groupService) *Service {
	return &Service{
		messageRepository: messageRepository,
		groupService:      groupService,
	}
}

type messageRepository interface {
	create(ctx context.Context, message *model.Message) error
	findAllByGroup(ctx context.Context, groupId uint) ([]model.Message, error)
}

type groupService interface {
	Find(ctx context.Context, id uint) (*model.Group, error)
	FindMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error)
}

type Service struct {
	messageRepository messageRepository
	groupService      groupService
}

// Create a message on a group's board. Only members of the group can post.
func (s *Service) Create(ctx context.Context, author *model.User, groupId uint, content string) (*model.Message, error) {
	if _, err := s.groupService.Find(ctx, groupId); err != nil {
		return nil, err
	}

	if _, err := s.groupService.FindMembership(ctx, groupId, author.ID); err != nil {
		if errdef.IsNotFound(err) {
			return nil, errdef.NewForbidden("user %d isn't a member of group %d", author.ID, groupId)
		}
		return nil, err
	}

	// characters, not bytes, and whitespace-only counts as empty
	if strings.TrimSpace(content) == "" {
		return nil, errdef.NewBadRequest("content can't be empty")
	}
	if utf8.RuneCountInString(content) > 1000 {
		return nil, errdef.NewBadRequest("content can't exceed 1000 characters")
	}

	message := &model.Message{
		Content:  content,
		AuthorID: author.ID,
		GroupID:  groupId,
	}

	if err := s.messageRepository.create(ctx, message); err != nil {
		return nil, err
	}

	return message, nil
}

func (s *Service) FindAllByGroup(ctx context.Context, groupId uint) ([]model.Message, error) {
	if _, err := s.groupService.Find(ctx, groupId); err != nil {
		return nil, err
	}
	return s.messageRepository.findAllByGroup(ctx, groupId)
}
