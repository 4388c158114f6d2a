package jobs

import (
	"context"
	"log"
	"time"

	"github.com/taskpal/taskpal-api/internal/constants"
	"github.com/taskpal/taskpal-api/internal/notify"
	"github.com/taskpal/taskpal-api/internal/repository"
)

// ReminderSweep periodically scans for tasks due soon and tasks past due. It
// has no caller: it reports only through logs.
type ReminderSweep struct {
	taskRepo   repository.TaskRepository
	dispatcher *notify.Dispatcher
	interval   time.Duration
}

// NewReminderSweep creates a sweep with the default hourly interval.
func NewReminderSweep(taskRepo repository.TaskRepository, dispatcher *notify.Dispatcher) *ReminderSweep {
	return &ReminderSweep{
		taskRepo:   taskRepo,
		dispatcher: dispatcher,
		interval:   constants.SweepInterval,
	}
}

// Start runs the sweep on its interval until ctx is cancelled.
func (s *ReminderSweep) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.RunOnce(time.Now())
			}
		}
	}()
}

// RunOnce executes a single sweep pass: reminders for tasks due within the
// next 24 hours, then a bulk flip of past-due pending tasks to overdue.
// Re-running is idempotent: sent reminders are never repeated and the overdue
// update only matches tasks still pending.
func (s *ReminderSweep) RunOnce(now time.Time) {
	log.Println("Running reminder sweep...")

	reminders := s.sendReminders(now)
	overdue := s.markOverdue(now)

	log.Printf("Sweep completed: reminders=%d overdue=%d", reminders, overdue)
}

// sendReminders notifies assignees of tasks due within the reminder window
// and marks each task as reminded. A failure on one task is logged and the
// loop continues; earlier tasks stay correctly marked.
func (s *ReminderSweep) sendReminders(now time.Time) int {
	candidates, err := s.taskRepo.ReminderCandidates(now, now.Add(constants.ReminderWindow))
	if err != nil {
		log.Printf("Sweep failed to find reminder candidates: %v", err)
		return 0
	}

	sent := 0
	for _, task := range candidates {
		s.dispatcher.Publish(notify.Event{
			Kind: notify.EventTaskReminder,
			To:   task.AssignedTo.Email,
			Task: task,
		})

		if err := s.taskRepo.MarkReminderSent(task.ID); err != nil {
			log.Printf("Sweep failed to mark reminder sent for task %d: %v", task.ID, err)
			continue
		}
		sent++
	}

	return sent
}

func (s *ReminderSweep) markOverdue(now time.Time) int64 {
	count, err := s.taskRepo.MarkOverdue(now)
	if err != nil {
		log.Printf("Sweep failed to mark overdue tasks: %v", err)
		return 0
	}
	return count
}
