package worker

import (
	"github.com/Moonidhi/CivicIssueManager/internal/events"
	"github.com/Moonidhi/CivicIssueManager/internal/service"
)

// StartNotificationWorker registers notification handlers on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
}
