package event

import (
	"context"
	"testing"
	"time"

	"github.com/gatherhub/gatherhub/internal/errdef"
	"github.com/gatherhub/gatherhub/pkg/model"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Create(t *testing.T) {
	creator := &model.User{ID: 1}
	startTime := time.Now().Add(time.Hour)
	endTime := startTime.Add(2 * time.Hour)

	t.Run("group member can create", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("create", mock.Anything, mock.AnythingOfType("*model.Event")).
			Return(nil)
		groups := &mockGroupService{}
		groups.
			On("Find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		groups.
			On("FindMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleMember}, nil)
		service := NewService(repository, groups)

		event, err := service.Create(context.Background(), creator, 1, "trail run", "", startTime, endTime, "", 0, 0, 10, 0)

		require.NoError(t, err)
		require.Equal(t, uint(1), event.CreatorID)
		require.Equal(t, uint(1), event.GroupID)
		repository.AssertExpectations(t)
	})

	t.Run("non-member is forbidden", func(t *testing.T) {
		repository := &mockEventRepository{}
		groups := &mockGroupService{}
		groups.
			On("Find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		groups.
			On("FindMembership", mock.Anything, uint(1), uint(1)).
			Return(nil, errdef.NewNotFound("user 1 isn't a member of group 1"))
		service := NewService(repository, groups)

		_, err := service.Create(context.Background(), creator, 1, "trail run", "", startTime, endTime, "", 0, 0, 10, 0)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "create", mock.Anything, mock.Anything)
	})

	t.Run("startTime in the past", func(t *testing.T) {
		repository := &mockEventRepository{}
		groups := &mockGroupService{}
		groups.
			On("Find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		groups.
			On("FindMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleMember}, nil)
		service := NewService(repository, groups)

		_, err := service.Create(context.Background(), creator, 1, "trail run", "", time.Now().Add(-time.Hour), endTime, "", 0, 0, 10, 0)

		require.True(t, errdef.IsBadRequest(err))
	})

	t.Run("endTime before startTime", func(t *testing.T) {
		repository := &mockEventRepository{}
		groups := &mockGroupService{}
		groups.
			On("Find", mock.Anything, uint(1)).
			Return(&model.Group{ID: 1}, nil)
		groups.
			On("FindMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.GroupMembership{GroupID: 1, UserID: 1, Role: model.RoleMember}, nil)
		service := NewService(repository, groups)

		_, err := service.Create(context.Background(), creator, 1, "trail run", "", startTime, startTime.Add(-time.Minute), "", 0, 0, 10, 0)

		require.True(t, errdef.IsBadRequest(err))
	})
}

func TestService_Update(t *testing.T) {
	startTime := time.Now().Add(time.Hour)
	endTime := startTime.Add(2 * time.Hour)

	t.Run("only the creator can update", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startTime, EndTime: endTime}, nil)
		service := NewService(repository, &mockGroupService{})

		_, err := service.Update(context.Background(), &model.User{ID: 2}, 1, "new", "", startTime, endTime, "", 0, 0, 0, 0)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "update", mock.Anything, mock.Anything)
	})

	t.Run("times are frozen once started", func(t *testing.T) {
		startedAt := time.Now().Add(-time.Hour)
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startedAt, EndTime: startedAt.Add(2 * time.Hour)}, nil)
		service := NewService(repository, &mockGroupService{})

		_, err := service.Update(context.Background(), &model.User{ID: 1}, 1, "new", "", startedAt.Add(time.Minute), startedAt.Add(3*time.Hour), "", 0, 0, 0, 0)

		require.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "update", mock.Anything, mock.Anything)
	})

	t.Run("other details can change after the start", func(t *testing.T) {
		startedAt := time.Now().Add(-time.Hour).Truncate(time.Second)
		endedAt := startedAt.Add(2 * time.Hour)
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startedAt, EndTime: endedAt}, nil)
		repository.
			On("update", mock.Anything, mock.AnythingOfType("*model.Event")).
			Return(nil)
		service := NewService(repository, &mockGroupService{})

		event, err := service.Update(context.Background(), &model.User{ID: 1}, 1, "new title", "", startedAt, endedAt, "", 0, 0, 0, 0)

		require.NoError(t, err)
		require.Equal(t, "new title", event.Title)
		repository.AssertExpectations(t)
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("only the creator can delete", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1}, nil)
		service := NewService(repository, &mockGroupService{})

		err := service.Delete(context.Background(), &model.User{ID: 2}, 1)

		require.True(t, errdef.IsForbidden(err))
		repository.AssertNotCalled(t, "delete", mock.Anything, mock.Anything)
	})

	t.Run("creator deletes", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1}, nil)
		repository.
			On("delete", mock.Anything, uint(1)).
			Return(nil)
		service := NewService(repository, &mockGroupService{})

		err := service.Delete(context.Background(), &model.User{ID: 1}, 1)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})
}

func TestService_Leave(t *testing.T) {
	startTime := time.Now().Add(time.Hour)

	t.Run("member leaves", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startTime}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.EventMembership{EventID: 1, UserID: 2}, nil)
		repository.
			On("leave", mock.Anything, uint(1), uint(2)).
			Return(nil)
		service := NewService(repository, &mockGroupService{})

		err := service.Leave(context.Background(), &model.User{ID: 2}, 1)

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("non-member", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startTime}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(nil, errdef.NewNotFound("user 2 isn't a member of event 1"))
		service := NewService(repository, &mockGroupService{})

		err := service.Leave(context.Background(), &model.User{ID: 2}, 1)

		require.True(t, errdef.IsBadRequest(err))
	})

	t.Run("creator can't leave", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: startTime}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(1)).
			Return(&model.EventMembership{EventID: 1, UserID: 1}, nil)
		service := NewService(repository, &mockGroupService{})

		err := service.Leave(context.Background(), &model.User{ID: 1}, 1)

		require.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "leave", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("started event", func(t *testing.T) {
		repository := &mockEventRepository{}
		repository.
			On("find", mock.Anything, uint(1)).
			Return(&model.Event{ID: 1, CreatorID: 1, StartTime: time.Now().Add(-time.Hour)}, nil)
		repository.
			On("findMembership", mock.Anything, uint(1), uint(2)).
			Return(&model.EventMembership{EventID: 1, UserID: 2}, nil)
		service := NewService(repository, &mockGroupService{})

		err := service.Leave(context.Background(), &model.User{ID: 2}, 1)

		require.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "leave", mock.Anything, mock.Anything, mock.Anything)
	})
}

type mockEventRepository struct {
	mock.Mock
}

func (m *mockEventRepository) create(ctx context.Context, event *model.Event) error {
	called := m.Called(ctx, event)
	return called.Error(0)
}

func (m *mockEventRepository) find(ctx context.Context, id uint) (*model.Event, error) {
	called := m.Called(ctx, id)
	event, ok := called.Get(0).(*model.Event)
	if ok {
		return event, nil
	}
	return nil, called.Error(1)
}

func (m *mockEventRepository) findAll(ctx context.Context, filter Filter, now time.Time) ([]model.Event, int64, error) {
	called := m.Called(ctx, filter, now)
	return called.Get(0).([]model.Event), called.Get(1).(int64), called.Error(2)
}

func (m *mockEventRepository) findAllByGroup(ctx context.Context, groupId uint) ([]model.Event, error) {
	called := m.Called(ctx, groupId)
	return called.Get(0).([]model.Event), called.Error(1)
}

func (m *mockEventRepository) update(ctx context.Context, event *model.Event) error {
	called := m.Called(ctx, event)
	return called.Error(0)
}

func (m *mockEventRepository) delete(ctx context.Context, id uint) error {
	called := m.Called(ctx, id)
	return called.Error(0)
}

func (m *mockEventRepository) findMembership(ctx context.Context, eventId, userId uint) (*model.EventMembership, error) {
	called := m.Called(ctx, eventId, userId)
	membership, ok := called.Get(0).(*model.EventMembership)
	if ok {
		return membership, nil
	}
	return nil, called.Error(1)
}

func (m *mockEventRepository) findMembers(ctx context.Context, eventId uint) ([]model.EventMembership, error) {
	called := m.Called(ctx, eventId)
	return called.Get(0).([]model.EventMembership), called.Error(1)
}

func (m *mockEventRepository) join(ctx context.Context, eventId, userId uint, now time.Time) error {
	called := m.Called(ctx, eventId, userId, now)
	return called.Error(0)
}

func (m *mockEventRepository) leave(ctx context.Context, eventId, userId uint) error {
	called := m.Called(ctx, eventId, userId)
	return called.Error(0)
}

type mockGroupService struct {
	mock.Mock
}

func (m *mockGroupService) Find(ctx context.Context, id uint) (*model.Group, error) {
	called := m.Called(ctx, id)
	group, ok := called.Get(0).(*model.Group)
	if ok {
		return group, nil
	}
	return nil, called.Error(1)
}

func (m *mockGroupService) FindMembership(ctx context.Context, groupId, userId uint) (*model.GroupMembership, error) {
	called := m.Called(ctx, groupId, userId)
	membership, ok := called.Get(0).(*model.GroupMembership)
	if ok {
		return membership, nil
	}
	return nil, called.Error(1)
}
