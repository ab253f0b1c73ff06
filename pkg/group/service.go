package group

import (
	"context"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
)

func NewService(groupRepository groupRepository) *Service {
	return &Service{
		groupRepository,
	}
}

type groupRepository interface {
	create(ctx context.Context, group *model.Group) error
	find(ctx context.Context, id uint) (*model.Group, error)
	findAll(ctx context.Context) ([]model.Group, error)
	update(ctx context.Context, group *model.Group) error
	delete(ctx context.Context, id uint) error
	findMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error)
	findMembers(ctx context.Context, groupId uint) ([]model.GroupMembership, error)
	addMember(ctx context.Context, groupId, userId uint, role model.Role) error
	updateMemberRole(ctx context.Context, groupId, userId uint, role model.Role) error
	removeMember(ctx context.Context, groupId, userId uint) error
	leave(ctx context.Context, groupId, userId uint) error
}

type Service struct {
	groupRepository groupRepository
}

func (s *Service) Create(ctx context.Context, creator *model.User, name, description, category, location string, latitude, longitude float64) (*model.Group, error) {
	group := &model.Group{
		Name:        name,
		Description: description,
		Category:    category,
		Location:    location,
		Latitude:    latitude,
		Longitude:   longitude,
		CreatorID:   creator.ID,
	}

	err := s.groupRepository.create(ctx, group)
	if err != nil {
		return nil, err
	}

	return group, nil
}

func (s *Service) Find(ctx context.Context, id uint) (*model.Group, error) {
	return s.groupRepository.find(ctx, id)
}

func (s *Service) FindAll(ctx context.Context) ([]model.Group, error) {
	return s.groupRepository.findAll(ctx)
}

// FindMembership returns the user's membership in the group, or a not found error if the user
// hasn't joined it.
func (s *Service) FindMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error) {
	return s.groupRepository.findMembership(ctx, groupId, userId)
}

func (s *Service) FindMembers(ctx context.Context, groupId uint) ([]model.GroupMembership, error) {
	if _, err := s.groupRepository.find(ctx, groupId); err != nil {
		return nil, err
	}
	return s.groupRepository.findMembers(ctx, groupId)
}

func (s *Service) Update(ctx context.Context, actor *model.User, id uint, name, description, category, location string, latitude, longitude float64) (*model.Group, error) {
	group, err := s.groupRepository.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, actor, id, model.PermissionUpdateGroup); err != nil {
		return nil, err
	}

	group.Name = name
	group.Description = description
	group.Category = category
	group.Location = location
	group.Latitude = latitude
	group.Longitude = longitude

	if err := s.groupRepository.update(ctx, group); err != nil {
		return nil, err
	}

	return group, nil
}

func (s *Service) Delete(ctx context.Context, actor *model.User, id uint) error {
	if err := s.authorize(ctx, actor, id, model.PermissionDeleteGroup); err != nil {
		return err
	}

	return s.groupRepository.delete(ctx, id)
}

func (s *Service) Join(ctx context.Context, actor *model.User, groupId uint) error {
	if _, err := s.groupRepository.find(ctx, groupId); err != nil {
		return err
	}

	return s.groupRepository.addMember(ctx, groupId, actor.ID, model.RoleMember)
}

func (s *Service) UpdateMemberRole(ctx context.Context, actor *model.User, groupId, targetUserId uint, role model.Role) error {
	if err := s.authorize(ctx, actor, groupId, model.PermissionManageRoles); err != nil {
		return err
	}

	if actor.ID == targetUserId {
		return errdef.NewConflict("members can't change their own role")
	}

	return s.groupRepository.updateMemberRole(ctx, groupId, targetUserId, role)
}

// RemoveMember removes targetUserId from the group. Members always remove themselves, removing
// someone else is an admin action. Removing an admin is rejected no matter who asks, which also
// means an admin has to step down (or leave) rather than be removed.
func (s *Service) RemoveMember(ctx context.Context, actor *model.User, groupId, targetUserId uint) error {
	if actor.ID == targetUserId {
		return s.groupRepository.leave(ctx, groupId, actor.ID)
	}

	if err := s.authorize(ctx, actor, groupId, model.PermissionRemoveMembers); err != nil {
		return err
	}

	return s.groupRepository.removeMember(ctx, groupId, targetUserId)
}

// authorize checks the permission matrix against the actor's role in the group. Non-members are
// rejected the same way members without the permission are.
func (s *Service) authorize(ctx context.Context, actor *model.User, groupId uint, permission model.Permission) error {
	membership, err := s.groupRepository.findMembership(ctx, groupId, actor.ID)
	if err != nil {
		if errdef.IsNotFound(err) {
			return errdef.NewForbidden("user %d isn't allowed to perform %q on group %d", actor.ID, permission, groupId)
		}
		return err
	}

	if !membership.Role.Can(permission) {
		return errdef.NewForbidden("user %d isn't allowed to perform %q on group %d", actor.ID, permission, groupId)
	}

	return nil
}
