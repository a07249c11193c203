package service

import (
	"context"
	"errors"

	"careernest/internal/apperr"
	"careernest/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type NotificationService struct {
	notificationRepo NotificationStore
}

func NewNotificationService(notificationRepo NotificationStore) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) BySeeker(ctx context.Context, seekerID bson.ObjectID, page, limit int) ([]*models.Notification, error) {
	page, limit = clampPage(page, limit)
	return s.notificationRepo.FindBySeeker(ctx, seekerID, page, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, seekerID, id bson.ObjectID) error {
	if err := s.notificationRepo.MarkRead(ctx, seekerID, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("notification not found")
		}
		return err
	}
	return nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, seekerID bson.ObjectID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, seekerID)
}
