package group

import (
	"context"
	"testing"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	repository := &mockGroupRepository{}
	repository.
		On("create", mock.Anything, mock.AnythingOfType("*model.Group")).
		Return(nil)
	service := NewService(repository)
	creator := &model.User{ID: 1}

	group, err := service.Create(context.Background(), creator, "hiking", "weekend hikes", "outdoors", "Oslo", 59.91, 10.75)

	require.NoError(t, err)
	require.Equal(t, uint(1), group.CreatorID)
	require.Equal(t, "hiking", group.Name)
	repository.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	t.Run("moderator can update", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1, Name: "old"}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 2, Role: model.RoleModerator}, nil)
		repository.
			On("update", mock.Anything, mock.AnythingOfType("*model.Group")).
			Return(nil)
		service := NewService(repository)

		group, err := service.Update(context.Background(), &model.User{ID: 2}, 1, "new", "", "", "", 0, 0)

		require.NoError(t, err)
		require.Equal(t, "new", group.Name)
		repository.AssertExpectations(t)
	})

	t.Run("regular member is forbidden", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 2, Role: model.RoleMember}, nil)
		service := NewService(repository)

		_, err := service.Update(context.Background(), &model.User{ID: 2}, 1, "new", "", "", "", 0, 0)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "update", mock.Anything, mock.Anything)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(9)).
			Return(nil, errdef.NewNotFound("user 9 isn't a member of group 1"))
		service := NewService(repository)

		_, err := service.Update(context.Background(), &model.User{ID: 9}, 1, "new", "", "", "", 0, 0)

		require.True(t, errdef.IsForbidden(err))
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("admin can delete", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleAdmin}, nil)
		repository.
			On("delete", mock.Anything, uint(1)).
			Return(nil)
		service := NewService(repository)

		err := service.Delete(context.Background(), &model.User{ID: 1}, 1)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("moderator is forbidden", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 2, Role: model.RoleModerator}, nil)
		service := NewService(repository)

		err := service.Delete(context.Background(), &model.User{ID: 2}, 1)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "delete", mock.Anything, mock.Anything)
	})
}

func TestService_Join(t *testing.T) {
	t.Run("joins as regular member", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		repository.
			On("addMember", mock.Anything, uint(1), uint(2), model.RoleMember).
			Return(nil)
		service := NewService(repository)

		err := service.Join(context.Background(), &model.User{ID: 2}, 1)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("unknown group", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("find", mock.Anything, uint(7)).
			Return(nil, errdef.NewNotFound("group not found by id: 7"))
		service := NewService(repository)

		err := service.Join(context.Background(), &model.User{ID: 2}, 7)

		require.True(t, errdef.IsNotFound(err))
		repository.AssertNotCalled(t, "addMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_UpdateMemberRole(t *testing.T) {
	t.Run("admin promotes member", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleAdmin}, nil)
		repository.
			On("updateMemberRole", mock.Anything, uint(1), uint(2), model.RoleModerator).
			Return(nil)
		service := NewService(repository)

		err := service.UpdateMemberRole(context.Background(), &model.User{ID: 1}, 1, 2, model.RoleModerator)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("moderator is forbidden", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 2, Role: model.RoleModerator}, nil)
		service := NewService(repository)

		err := service.UpdateMemberRole(context.Background(), &model.User{ID: 2}, 1, 3, model.RoleModerator)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "updateMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin can't change own role", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleAdmin}, nil)
		service := NewService(repository)

		err := service.UpdateMemberRole(context.Background(), &model.User{ID: 1}, 1, 1, model.RoleMember)

		require.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "updateMemberRole", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_RemoveMember(t *testing.T) {
	t.Run("member removes themselves", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("leave", mock.Anything, uint(1), uint(2)).
			Return(nil)
		service := NewService(repository)

		err := service.RemoveMember(context.Background(), &model.User{ID: 2}, 1, 2)

		require.NoError(t, err)
		repository.AssertNotCalled(t, "findMembership", mock.Anything, mock.Anything, mock.Anything)
		repository.AssertExpectations(t)
	})

	t.Run("admin removes member", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleAdmin}, nil)
		repository.
			On("removeMember", mock.Anything, uint(1), uint(2)).
			Return(nil)
		service := NewService(repository)

		err := service.RemoveMember(context.Background(), &model.User{ID: 1}, 1, 2)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("member removing someone else is forbidden", func(t *testing.T) {
		repository := &mockGroupRepository{}
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 2, Role: model.RoleMember}, nil)
		service := NewService(repository)

		err := service.RemoveMember(context.Background(), &model.User{ID: 2}, 1, 3)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "removeMember", mock.Anything, mock.Anything, mock.Anything)
	})
}

type mockGroupRepository struct {
	mock.Mock
}

func (m *mockGroupRepository) create(ctx context.Context, group *model.Group) error {
	called := m.Called(ctx, group)
	return called.Error(0)
}

func (m *mockGroupRepository) find(ctx context.Context, id uint) (*model.Group, error) {
	called := m.Called(ctx, id)
	group, ok := called.Get(0).(*model.Group)
	if ok {
		return group, nil
	}
	return nil, called.Error(1)
}

func (m *mockGroupRepository) findAll(ctx context.Context) ([]model.Group, error) {
	called := m.Called(ctx)
	return called.Get(0).([]model.Group), called.Error(1)
}

func (m *mockGroupRepository) update(ctx context.Context, group *model.Group) error {
	called := m.Called(ctx, group)
	return called.Error(0)
}

func (m *mockGroupRepository) delete(ctx context.Context, id uint) error {
	called := m.Called(ctx, id)
	return called.Error(0)
}

func (m *mockGroupRepository) findMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error) {
	called := m.Called(ctx, groupId, userId)
	membership, ok := called.Get(0).(*model.GroupMembership)
	if ok {
		return membership, nil
	}
	return nil, called.Error(1)
}

func (m *mockGroupRepository) findMembers(ctx context.Context, groupId uint) ([]model.GroupMembership, error) {
	called := m.Called(ctx, groupId)
	return called.Get(0).([]model.GroupMembership), called.Error(1)
}

func (m *mockGroupRepository) addMember(ctx context.Context, groupId, userId uint, role model.Role) error {
	called := m.Called(ctx, groupId, userId, role)
	return called.Error(0)
}

func (m *mockGroupRepository) updateMemberRole(ctx context.Context, groupId, userId uint, role model.Role) error {
	called := m.Called(ctx, groupId, userId, role)
	return called.Error(0)
}

func (m *mockGroupRepository) removeMember(ctx context.Context, groupId, userId uint) error {
	called := m.Called(ctx, groupId, userId)
	return called.Error(0)
}

func (m *mockGroupRepository) leave(ctx context.Context, groupId, userId uint) error {
	called := m.Called(ctx, groupId, userId)
	return called.Error(0)
}
