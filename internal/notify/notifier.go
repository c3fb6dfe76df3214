// Package notify delivers debt notifications. Delivery is best effort:
// the expense lifecycle records failures but never rolls back because of
// one.
package notify

import (
	"context"
	"log/slog"

	"github.com/kmadan/splitledger/internal/money"
)

// Notice is one notification about a debt obligation.
type Notice struct {
	// RecipientEmail is where the notice goes. Empty means the
	// recipient has no reachable address; senders should fail fast.
	RecipientEmail string

	// RecipientName and CounterpartyName are display names resolved by
	// the caller.
	RecipientName    string
	CounterpartyName string

	// Description is the expense description the debt came from.
	Description string

	// Amount is what the recipient owes.
	Amount money.Money

	// Reminder marks a repeat notice for an old pending debt rather
	// than a freshly created one.
	Reminder bool
}

// Notifier is the outbound notification collaborator. Implementations
// must be safe for concurrent use: the lifecycle dispatches one call per
// obligation, possibly in parallel.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// LogNotifier writes notices to the log. Used when SMTP is not
// configured, and as the default in tests.
type LogNotifier struct{}

// Notify logs the notice.
func (LogNotifier) Notify(_ context.Context, n Notice) error {
	slog.Info("debt notification",
		"recipient", n.RecipientEmail,
		"counterparty", n.CounterpartyName,
		"amount", n.Amount.Format(),
		"description", n.Description,
		"reminder", n.Reminder,
	)
	return nil
}
