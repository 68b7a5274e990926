package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Moonidhi/CivicIssueManager/internal/domain"
	"github.com/Moonidhi/CivicIssueManager/internal/events"
	"github.com/Moonidhi/CivicIssueManager/internal/repository"
	apperrors "github.com/Moonidhi/CivicIssueManager/pkg/util"
)

// StatusChangeMessage renders the stored notification text. Status tokens
// keep their underscores; display layers may humanize but the stored
// message is never regenerated.
func StatusChangeMessage(issueTitle string, oldStatus, newStatus domain.IssueStatus) string {
	return fmt.Sprintf(`Issue "%s" status changed from %s to %s`, issueTitle, oldStatus, newStatus)
}

// NotificationService derives notification records from lifecycle events
// and tracks per-recipient read state. Unread counts are cached in Redis
// and invalidated on every write.
type NotificationService struct {
	notifications repository.NotificationRepository
	cache         *redis.Client
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewNotificationService creates the service. The cache client may be nil.
func NewNotificationService(notifications repository.NotificationRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to lifecycle events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventIssueStatusChanged, n.handleStatusChanged)
}

// handleStatusChanged notifies the original reporter, never the acting admin.
func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.IssueStatusChangedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for status change event", zap.String("event_id", event.ID))
		return nil
	}

	notification := &domain.Notification{
		UserID:  payload.ReporterID,
		IssueID: event.IssueID,
		Type:    domain.NotificationStatusChange,
		Message: StatusChangeMessage(payload.IssueTitle, payload.OldStatus, payload.NewStatus),
		Read:    false,
	}
	if err := n.notifications.Create(ctx, notification); err != nil {
		n.logger.Error("failed to persist notification",
			zap.String("issue_id", event.IssueID),
			zap.String("recipient", payload.ReporterID),
			zap.Error(err))
		return err
	}
	n.invalidateUnreadCount(ctx, payload.ReporterID)

	n.logger.Info("notification created",
		zap.String("issue_id", event.IssueID),
		zap.String("recipient", payload.ReporterID),
		zap.String("type", string(notification.Type)))
	return nil
}

// Inbox returns the user's notifications in insertion order, newest first.
func (n *NotificationService) Inbox(ctx context.Context, userID string) ([]domain.Notification, error) {
	list, err := n.notifications.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return list, nil
}

// UnreadCount returns the user's unread total, served from cache when warm.
func (n *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	key := unreadCountKey(userID)
	if n.cache != nil {
		if cached, err := n.cache.Get(ctx, key).Result(); err == nil {
			if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
				return count, nil
			}
		}
	}

	count, err := n.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	if n.cache != nil {
		if err := n.cache.Set(ctx, key, count, n.cacheTTL).Err(); err != nil {
			n.logger.Debug("unread count cache write failed", zap.Error(err))
		}
	}
	return count, nil
}

// MarkRead flips a single notification to read. Idempotent: marking an
// already-read notification succeeds without a write. Only the recipient
// may mark their own notifications.
func (n *NotificationService) MarkRead(ctx context.Context, actor *domain.User, notificationID string) (*domain.Notification, error) {
	notification, err := n.notifications.GetByID(ctx, notificationID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("notification", map[string]any{"id": notificationID})
		}
		return nil, apperrors.MapError(err)
	}
	if actor == nil || notification.UserID != actor.ID {
		return nil, apperrors.NewForbidden("notification belongs to another user")
	}
	if notification.Read {
		return notification, nil
	}

	if err := n.notifications.MarkRead(ctx, notification.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	notification.Read = true
	n.invalidateUnreadCount(ctx, notification.UserID)
	return notification, nil
}

// MarkAllRead flips every unread notification belonging to the user.
// Notifications of other users are untouched.
func (n *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := n.notifications.MarkAllRead(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	n.invalidateUnreadCount(ctx, userID)
	return nil
}

func (n *NotificationService) invalidateUnreadCount(ctx context.Context, userID string) {
	if n.cache == nil {
		return
	}
	if err := n.cache.Del(ctx, unreadCountKey(userID)).Err(); err != nil {
		n.logger.Debug("unread count cache invalidation failed", zap.Error(err))
	}
}

func unreadCountKey(userID string) string {
	return "notifications:unread:" + userID
}
