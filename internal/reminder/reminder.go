// Package reminder re-notifies users about debts that are still pending.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/notify"
	"github.com/kmadan/splitledger/internal/storage"
)

// runTimeout bounds a single sweep across all users.
const runTimeout = 5 * time.Minute

// Job walks every user's pending debts and sends reminder notices for
// the ones the user still owes. It is best effort: a failure for one
// user never stops the sweep.
type Job struct {
	store    storage.Store
	notifier notify.Notifier
}

// New creates a reminder Job.
func New(store storage.Store, notifier notify.Notifier) *Job {
	return &Job{store: store, notifier: notifier}
}

// Schedule registers the job on the given cron runner with the given
// spec (standard five-field cron syntax).
func (j *Job) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, j.Run)
	return err
}

// Run executes one sweep.
func (j *Job) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	users, err := j.store.ListUsers(ctx)
	if err != nil {
		slog.Error("reminder sweep failed to list users", "error", err)
		return
	}

	var sent int
	for _, user := range users {
		sent += j.remindUser(ctx, user)
	}
	slog.Info("reminder sweep complete", "users", len(users), "reminders_sent", sent)
}

func (j *Job) remindUser(ctx context.Context, user models.User) int {
	debts, err := j.store.ListObligations(ctx, storage.ObligationFilter{
		UserID:      user.ID,
		Participant: models.Self,
		Role:        storage.RoleDebtor,
		Status:      models.DebtPending,
	})
	if err != nil {
		slog.Error("reminder sweep failed to list debts", "user_id", user.ID, "error", err)
		return 0
	}

	var sent int
	for _, debt := range debts {
		description := ""
		if expense, err := j.store.GetExpense(ctx, user.ID, debt.ExpenseID); err == nil {
			description = expense.Description
		}

		err := j.notifier.Notify(ctx, notify.Notice{
			RecipientEmail:   user.Email,
			RecipientName:    user.DisplayName,
			CounterpartyName: string(debt.Creditor),
			Description:      description,
			Amount:           debt.Amount,
			Reminder:         true,
		})
		if err != nil {
			slog.Error("failed to send reminder",
				"user_id", user.ID,
				"debt_id", debt.ID,
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent
}
