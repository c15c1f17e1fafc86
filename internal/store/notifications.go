package store

import (
	"sync/atomic"

	"github.com/imbecis/app-imbecis/internal/models"
)

// nextNotificationID is shared by every store in the process so ids are
// never reused, even across stores.
var nextNotificationID atomic.Int64

// Notifications is an append-only queue of user-facing messages. The store
// never removes entries; dismissal belongs to the display surface.
type Notifications struct {
	items  *Observable[[]models.Notification]
	onPush func(models.Notification)
}

// NewNotifications creates an empty notification store
func NewNotifications() *Notifications {
	return &Notifications{items: NewObservable([]models.Notification{})}
}

// OnPush registers a hook called after every push (metrics, logging)
func (n *Notifications) OnPush(fn func(models.Notification)) {
	n.onPush = fn
}

// Push appends a notification with the next process-wide id. An empty type
// defaults to info.
func (n *Notifications) Push(message string, kind models.NotificationType) {
	if kind == "" {
		kind = models.NotificationInfo
	}
	var notification models.Notification

	// id assigned under the store lock so sequence order matches id order
	n.items.Update(func(current []models.Notification) []models.Notification {
		notification = models.Notification{
			ID:      nextNotificationID.Add(1) - 1,
			Message: message,
			Type:    kind,
		}
		next := make([]models.Notification, len(current), len(current)+1)
		copy(next, current)
		return append(next, notification)
	})

	if n.onPush != nil {
		n.onPush(notification)
	}
}

// Snapshot returns the notifications in push order
func (n *Notifications) Snapshot() []models.Notification {
	items := n.items.Get()
	out := make([]models.Notification, len(items))
	copy(out, items)
	return out
}

// Subscribe observes the full ordered sequence after each push
func (n *Notifications) Subscribe(fn func([]models.Notification)) func() {
	return n.items.Subscribe(fn)
}
