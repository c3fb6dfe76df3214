package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kmadan/splitledger/internal/calculator"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/notify"
	"github.com/kmadan/splitledger/internal/storage"
	"github.com/kmadan/splitledger/internal/storage/sqlite"
)

// recordingNotifier captures notices; it can be told to fail every send.
type recordingNotifier struct {
	mu      sync.Mutex
	notices []notify.Notice
	fail    bool
}

func (n *recordingNotifier) Notify(_ context.Context, notice notify.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("smtp unreachable")
	}
	n.notices = append(n.notices, notice)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notices)
}

type fixture struct {
	store    *sqlite.SQLiteStore
	notifier *recordingNotifier
	expenses *ExpenseService
	friends  *FriendService
	userID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	user := models.NewUser("alice@example.com", "Alice", "hash", "INR")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	notifier := &recordingNotifier{}
	return &fixture{
		store:    store,
		notifier: notifier,
		expenses: NewExpenseService(store, notifier),
		friends:  NewFriendService(store),
		userID:   user.ID,
	}
}

func (f *fixture) addFriend(t *testing.T, name, email string) models.Participant {
	t.Helper()
	friend, err := f.friends.AddFriend(context.Background(), f.userID, name, email)
	if err != nil {
		t.Fatalf("failed to add friend %s: %v", name, err)
	}
	return models.Participant(friend.ID)
}

func TestCreateSplitExpenseEqual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")
	carol := f.addFriend(t, "Carol", "carol@example.com")

	result, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Dinner",
		TotalUnits:   1000,
		PaidBy:       models.Self,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{bob, carol},
	})
	if err != nil {
		t.Fatalf("CreateSplitExpense failed: %v", err)
	}

	if result.DebtsCreated != 2 {
		t.Errorf("expected 2 debts created, got %d", result.DebtsCreated)
	}
	if result.NotificationsSent != 2 {
		t.Errorf("expected 2 notifications sent, got %d", result.NotificationsSent)
	}

	// 1000 over three sharers: 334 + 333 to the participants, 333
	// retained by the payer.
	shares := result.Expense.Shares
	if len(shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(shares))
	}
	if shares[0].Participant != bob || shares[0].Amount.Units != 334 {
		t.Errorf("unexpected first share: %+v", shares[0])
	}
	if shares[1].Participant != carol || shares[1].Amount.Units != 333 {
		t.Errorf("unexpected second share: %+v", shares[1])
	}

	debts, err := f.expenses.ListDebts(ctx, f.userID, storage.RoleCreditor)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(debts) != 2 {
		t.Fatalf("expected 2 pending debts, got %d", len(debts))
	}
	for _, d := range debts {
		if d.Creditor != models.Self {
			t.Errorf("expected self as creditor, got %s", d.Creditor)
		}
		if d.Status != models.DebtPending {
			t.Errorf("expected pending debt, got %s", d.Status)
		}
	}

	if got := f.notifier.count(); got != 2 {
		t.Errorf("expected 2 recorded notices, got %d", got)
	}
}

func TestCreateSplitExpenseUnknownParticipant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Dinner",
		TotalUnits:   1000,
		PaidBy:       models.Self,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{"nobody"},
	})
	if !errors.Is(err, ErrUnknownParticipant) {
		t.Fatalf("expected ErrUnknownParticipant, got %v", err)
	}

	expenses, err := f.expenses.ListExpenses(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expected no expenses persisted, got %d", len(expenses))
	}
}

func TestCreateSplitExpenseCustomMismatchPersistsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")

	_, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Groceries",
		TotalUnits:   500,
		PaidBy:       models.Self,
		Strategy:     models.StrategyCustom,
		Participants: []models.Participant{bob},
		CustomShares: map[models.Participant]int64{bob: 550},
	})
	if !errors.Is(err, calculator.ErrSplitMismatch) {
		t.Fatalf("expected ErrSplitMismatch, got %v", err)
	}

	expenses, err := f.expenses.ListExpenses(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expected no expenses persisted, got %d", len(expenses))
	}
	debts, err := f.expenses.ListDebts(ctx, f.userID, storage.RoleCreditor)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(debts) != 0 {
		t.Errorf("expected no debts persisted, got %d", len(debts))
	}
	if got := f.notifier.count(); got != 0 {
		t.Errorf("expected no notices, got %d", got)
	}
}

func TestCreateSplitExpenseNotificationFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	f.notifier.fail = true
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")

	result, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Cab",
		TotalUnits:   400,
		PaidBy:       models.Self,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{bob},
	})
	if err != nil {
		t.Fatalf("CreateSplitExpense failed: %v", err)
	}

	if result.DebtsCreated != 1 {
		t.Errorf("expected 1 debt created, got %d", result.DebtsCreated)
	}
	if result.NotificationsSent != 0 {
		t.Errorf("expected 0 notifications sent, got %d", result.NotificationsSent)
	}

	// The expense must survive the delivery failure.
	expenses, err := f.expenses.ListExpenses(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Errorf("expected 1 expense persisted, got %d", len(expenses))
	}
}

func TestDeleteExpenseRemovesDebtsFromSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")

	result, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Rent",
		TotalUnits:   1000,
		PaidBy:       models.Self,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{bob},
	})
	if err != nil {
		t.Fatalf("CreateSplitExpense failed: %v", err)
	}

	summary, err := f.expenses.Summary(ctx, f.userID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalLent.Units != 500 || summary.NetBalance.Units != 500 {
		t.Fatalf("unexpected summary before delete: %+v", summary)
	}

	if err := f.expenses.DeleteExpense(ctx, f.userID, result.Expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	summary, err = f.expenses.Summary(ctx, f.userID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalLent.Units != 0 || summary.TotalOwed.Units != 0 || summary.NetBalance.Units != 0 {
		t.Errorf("expected zero summary after delete, got %+v", summary)
	}
}

func TestSummaryWhenFriendPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")

	_, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Movie",
		TotalUnits:   1000,
		PaidBy:       bob,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{models.Self},
	})
	if err != nil {
		t.Fatalf("CreateSplitExpense failed: %v", err)
	}

	summary, err := f.expenses.Summary(ctx, f.userID)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalLent.Units != 0 {
		t.Errorf("expected nothing lent, got %d", summary.TotalLent.Units)
	}
	if summary.TotalOwed.Units != 500 {
		t.Errorf("expected 500 owed, got %d", summary.TotalOwed.Units)
	}
	if summary.NetBalance.Units != -500 {
		t.Errorf("expected net balance -500, got %d", summary.NetBalance.Units)
	}
}

func TestSettleDebtTransitionsExpense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addFriend(t, "Bob", "bob@example.com")

	_, err := f.expenses.CreateSplitExpense(ctx, f.userID, CreateExpenseRequest{
		Description:  "Lunch",
		TotalUnits:   600,
		PaidBy:       models.Self,
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{bob},
	})
	if err != nil {
		t.Fatalf("CreateSplitExpense failed: %v", err)
	}

	debts, err := f.expenses.ListDebts(ctx, f.userID, storage.RoleCreditor)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(debts) != 1 {
		t.Fatalf("expected 1 pending debt, got %d", len(debts))
	}

	if err := f.expenses.SettleDebt(ctx, f.userID, debts[0].ID); err != nil {
		t.Fatalf("SettleDebt failed: %v", err)
	}

	debts, err = f.expenses.ListDebts(ctx, f.userID, storage.RoleCreditor)
	if err != nil {
		t.Fatalf("ListDebts failed: %v", err)
	}
	if len(debts) != 0 {
		t.Errorf("expected no pending debts after settling, got %d", len(debts))
	}

	expenses, err := f.expenses.ListExpenses(ctx, f.userID)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	if expenses[0].Status != models.ExpenseSettled {
		t.Errorf("expected settled expense, got %s", expenses[0].Status)
	}
}
