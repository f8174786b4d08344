package core

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"fitmyphone-backend-go/internal/models"
)

// notificationService implements the NotificationService interface over
// Firebase Cloud Messaging. The payload shape is fixed by the service worker
// on the client: {notification: {title, body, image}, data: {url}}.
type notificationService struct {
	messenger Messenger
	clientURL string
	logger    *zap.Logger
}

// NewNotificationService creates a new NotificationService instance.
func NewNotificationService(messenger Messenger, clientURL string, logger *zap.Logger) NotificationService {
	return &notificationService{
		messenger: messenger,
		clientURL: clientURL,
		logger:    logger,
	}
}

// NotifyContributionApproved pushes an approval notice to every device token
// the submitter registered. A token-level failure is logged and skipped; the
// call only errors when no token could be delivered to.
func (s *notificationService) NotifyContributionApproved(ctx context.Context, user *models.User, contribution *models.Contribution) error {
	if user == nil || len(user.FCMTokens) == 0 {
		return nil
	}

	body := fmt.Sprintf("Your %s contribution (%s) was approved.",
		contribution.AccessoryType, strings.Join(contribution.Models, ", "))
	url := strings.TrimSuffix(s.clientURL, "/") + "/profile/contributions"

	delivered := 0
	for _, token := range user.FCMTokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Contribution approved",
				Body:  body,
			},
			Data: map[string]string{"url": url},
		}
		if _, err := s.messenger.Send(ctx, message); err != nil {
			s.logger.Warn("push notification send failed",
				zap.String("userId", user.ID),
				zap.Error(err))
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("no push notification could be delivered to user '%s'", user.ID)
	}
	return nil
}
