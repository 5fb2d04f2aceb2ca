package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	items   []entity.Notification
	readOK  bool
	lastLim int
}

func (m *memRepo) Create(_ context.Context, n *entity.Notification) error {
	m.items = append(m.items, *n)
	return nil
}

func (m *memRepo) GetByUserID(_ context.Context, _ uuid.UUID, limit, _ int) ([]entity.Notification, error) {
	m.lastLim = limit
	return m.items, nil
}

func (m *memRepo) MarkAsRead(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
	return m.readOK, nil
}

func (m *memRepo) MarkAllAsRead(context.Context, uuid.UUID) error { return nil }

func (m *memRepo) CountUnread(context.Context, uuid.UUID) (int64, error) {
	return int64(len(m.items)), nil
}

func TestCreateNotification_PublishesToUserChannel(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &memRepo{}
	svc := NewNotificationService(repo, db)

	n := &entity.Notification{ID: uuid.New(), UserID: uuid.New(), Type: entity.NotificationXPDecay, Amount: 60}
	payload, err := json.Marshal(n)
	require.NoError(t, err)

	mock.ExpectPublish(ChannelFor(n.UserID), payload).SetVal(1)

	require.NoError(t, svc.CreateNotification(context.Background(), n))
	assert.Len(t, repo.items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateNotification_PublishFailureIsTolerated(t *testing.T) {
	db, mock := redismock.NewClientMock()
	repo := &memRepo{}
	svc := NewNotificationService(repo, db)

	n := &entity.Notification{ID: uuid.New(), UserID: uuid.New(), Type: entity.NotificationTierUp}
	payload, _ := json.Marshal(n)
	mock.ExpectPublish(ChannelFor(n.UserID), payload).SetErr(errors.New("connection refused"))

	assert.NoError(t, svc.CreateNotification(context.Background(), n))
	assert.Len(t, repo.items, 1)
}

func TestCreateNotification_WithoutRedis(t *testing.T) {
	repo := &memRepo{}
	svc := NewNotificationService(repo, nil)

	assert.NoError(t, svc.CreateNotification(context.Background(), &entity.Notification{UserID: uuid.New()}))
	assert.Len(t, repo.items, 1)
}

func TestMarkAsRead_NotOwned(t *testing.T) {
	svc := NewNotificationService(&memRepo{readOK: false}, nil)
	err := svc.MarkAsRead(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetNotifications_ClampsLimit(t *testing.T) {
	repo := &memRepo{}
	svc := NewNotificationService(repo, nil)

	_, err := svc.GetNotifications(context.Background(), uuid.New(), 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastLim)
}

func TestChannelFor(t *testing.T) {
	id := uuid.MustParse("2f1b8f3e-7c1d-4a7e-9f3e-1d2c3b4a5f60")
	assert.Equal(t, "user_notifications:2f1b8f3e-7c1d-4a7e-9f3e-1d2c3b4a5f60", ChannelFor(id))
}
