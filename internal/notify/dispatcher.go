package notify

import (
	"context"
	"log"

	"github.com/taskpal/taskpal-api/internal/mailer"
	"github.com/taskpal/taskpal-api/internal/models"
)

// EventKind identifies the type of outbound notification.
type EventKind string

const (
	EventTaskAssigned EventKind = "task_assigned"
	EventTaskReminder EventKind = "task_reminder"
)

// Event is one outbound notification. Task and AssignedBy are snapshots taken
// when the event was published.
type Event struct {
	Kind       EventKind
	To         string
	Task       models.Task
	AssignedBy models.User
}

// Dispatcher queues notification events and delivers them on a single worker
// goroutine. Delivery is fire-and-forget: publishers never block on the mail
// transport and failures are logged, never surfaced.
type Dispatcher struct {
	mailer mailer.Mailer
	events chan Event
}

// NewDispatcher creates a Dispatcher with the given queue capacity.
func NewDispatcher(m mailer.Mailer, capacity int) *Dispatcher {
	return &Dispatcher{
		mailer: m,
		events: make(chan Event, capacity),
	}
}

// Start runs the delivery worker until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-d.events:
				d.deliver(event)
			}
		}
	}()
}

// Publish enqueues an event without blocking. A full queue drops the event
// with a log line; notification loss is always recoverable.
func (d *Dispatcher) Publish(event Event) {
	select {
	case d.events <- event:
	default:
		log.Printf("notify: queue full, dropping %s event for %s", event.Kind, event.To)
	}
}

func (d *Dispatcher) deliver(event Event) {
	var err error
	switch event.Kind {
	case EventTaskAssigned:
		err = d.mailer.SendTaskAssigned(event.To, &event.Task, &event.AssignedBy)
	case EventTaskReminder:
		err = d.mailer.SendTaskReminder(event.To, &event.Task)
	default:
		log.Printf("notify: unknown event kind %q", event.Kind)
		return
	}

	if err != nil {
		log.Printf("notify: failed to send %s email to %s: %v", event.Kind, event.To, err)
	}
}
