package usecase

import (
	"time"

	"github.com/google/uuid"
)

// ChangeNotifier is told about every successful mutation.
type ChangeNotifier interface {
	Publish(resource, action string, ids ...string)
}

// Notifiers fans a change out to several notifiers.
type Notifiers []ChangeNotifier

func (n Notifiers) Publish(resource, action string, ids ...string) {
	for _, notifier := range n {
		if notifier != nil {
			notifier.Publish(resource, action, ids...)
		}
	}
}

type noopNotifier struct{}

func (noopNotifier) Publish(string, string, ...string) {}

func notifierOrNoop(n ChangeNotifier) ChangeNotifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionBulkUpdate = "bulk_update"
	ActionBulkDelete = "bulk_delete"
)

func generateUUID() string {
	return uuid.NewString()
}

func utcNow() time.Time {
	return time.Now().UTC()
}
