package handlers

import (
	"net/http"

	"github.com/shophub/cart-service/internal/notify"
)

// NotificationHandler exposes the recent user-facing notifications
type NotificationHandler struct {
	feed *notify.Feed
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(feed *notify.Feed) *NotificationHandler {
	return &NotificationHandler{feed: feed}
}

// ListNotifications handles GET /api/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.feed.Recent())
}
