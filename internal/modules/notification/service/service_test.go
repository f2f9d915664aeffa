package service

import (
	"context"
	"testing"

	"anoa.com/careerhub/internal/entity"
	"anoa.com/careerhub/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items      []entity.Notification
	lastLimit  int
	lastOffset int
}

func (f *fakeRepo) Create(_ context.Context, n *entity.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	f.lastLimit, f.lastOffset = limit, offset
	var out []entity.Notification
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeRepo) MarkAsRead(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].IsRead = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) MarkAllAsRead(_ context.Context, userID uuid.UUID) error {
	for i := range f.items {
		if f.items[i].UserID == userID {
			f.items[i].IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

func TestCreateAndCount(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil)
	owner := uuid.New()
	ctx := context.Background()

	require.NoError(t, svc.CreateNotification(ctx, &entity.Notification{UserID: owner, Type: entity.NotificationApplicationSubmitted}))
	require.NoError(t, svc.CreateNotification(ctx, &entity.Notification{UserID: uuid.New(), Type: entity.NotificationApplicationRejected}))

	count, err := svc.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAllAsRead(ctx, owner))
	count, err = svc.UnreadCount(ctx, owner)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAsReadOnlyForRecipient(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil)
	owner := uuid.New()
	ctx := context.Background()

	n := &entity.Notification{UserID: owner}
	require.NoError(t, svc.CreateNotification(ctx, n))

	err := svc.MarkAsRead(ctx, repo.items[0].ID, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	assert.NoError(t, svc.MarkAsRead(ctx, repo.items[0].ID, owner))
}

func TestGetNotificationsClampsPaging(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, nil)

	_, err := svc.GetNotifications(context.Background(), uuid.New(), 0, -3)
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)

	_, err = svc.GetNotifications(context.Background(), uuid.New(), 500, 10)
	require.NoError(t, err)
	assert.Equal(t, maxLimit, repo.lastLimit)
	assert.Equal(t, 10, repo.lastOffset)
}
