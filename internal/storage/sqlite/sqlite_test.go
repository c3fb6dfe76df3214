package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/money"
	"github.com/kmadan/splitledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "Test User", "hash", "INR")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

func seedExpense(t *testing.T, store *SQLiteStore, userID string, totalUnits int64, shares map[models.Participant]int64) (*models.Expense, []models.DebtObligation) {
	t.Helper()
	expense := &models.Expense{
		UserID:      userID,
		Description: "Dinner",
		Total:       money.New(totalUnits, "INR"),
		Payer:       models.Self,
		Strategy:    models.StrategyEqual,
	}
	var debts []models.DebtObligation
	for participant, units := range shares {
		expense.Shares = append(expense.Shares, models.Share{
			Participant: participant,
			Amount:      money.New(units, "INR"),
		})
		debts = append(debts, models.DebtObligation{
			Creditor: models.Self,
			Debtor:   participant,
			Amount:   money.New(units, "INR"),
			Type:     models.DebtSplit,
			Status:   models.DebtPending,
		})
	}
	if err := store.CreateExpenseWithDebts(context.Background(), expense, debts); err != nil {
		t.Fatalf("CreateExpenseWithDebts failed: %v", err)
	}
	return expense, debts
}

func TestCreateExpenseWithDebts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	expense, debts := seedExpense(t, store, user.ID, 1000, map[models.Participant]int64{
		"f1": 500,
	})

	if expense.ID == "" {
		t.Error("Expected expense ID to be generated")
	}
	if expense.CreatedAt == 0 {
		t.Error("Expected CreatedAt to be set")
	}
	if expense.Status != models.ExpenseActive {
		t.Errorf("Expected status active, got %s", expense.Status)
	}
	for _, d := range debts {
		if d.ID == "" {
			t.Error("Expected debt ID to be generated")
		}
		if d.ExpenseID != expense.ID {
			t.Errorf("Debt expense link = %s, want %s", d.ExpenseID, expense.ID)
		}
	}

	retrieved, err := store.GetExpense(ctx, user.ID, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if retrieved.Description != "Dinner" || retrieved.Total.Units != 1000 {
		t.Errorf("Retrieved expense mismatch: %+v", retrieved)
	}
	if len(retrieved.Shares) != 1 || retrieved.Shares[0].Amount.Units != 500 {
		t.Errorf("Retrieved shares mismatch: %+v", retrieved.Shares)
	}
}

func TestGetExpenseScopedToUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	expense, _ := seedExpense(t, store, alice.ID, 300, map[models.Participant]int64{"f1": 150})

	if _, err := store.GetExpense(ctx, bob.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for another user's expense, got %v", err)
	}
}

func TestListObligationsFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	seedExpense(t, store, user.ID, 900, map[models.Participant]int64{
		"f1": 300,
		"f2": 300,
	})

	// Owed to me: self is creditor.
	owedToMe, err := store.ListObligations(ctx, storage.ObligationFilter{
		UserID:      user.ID,
		Participant: models.Self,
		Role:        storage.RoleCreditor,
		Type:        models.DebtSplit,
		Status:      models.DebtPending,
	})
	if err != nil {
		t.Fatalf("ListObligations failed: %v", err)
	}
	if len(owedToMe) != 2 {
		t.Fatalf("got %d obligations, want 2", len(owedToMe))
	}

	// Owed by me: self is debtor — none here.
	owedByMe, err := store.ListObligations(ctx, storage.ObligationFilter{
		UserID:      user.ID,
		Participant: models.Self,
		Role:        storage.RoleDebtor,
	})
	if err != nil {
		t.Fatalf("ListObligations failed: %v", err)
	}
	if len(owedByMe) != 0 {
		t.Errorf("got %d debtor obligations, want 0", len(owedByMe))
	}
}

func TestDeleteExpenseCascade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	expense, _ := seedExpense(t, store, user.ID, 600, map[models.Participant]int64{
		"f1": 200,
		"f2": 200,
	})

	if err := store.DeleteExpenseCascade(ctx, user.ID, expense.ID); err != nil {
		t.Fatalf("DeleteExpenseCascade failed: %v", err)
	}

	if _, err := store.GetExpense(ctx, user.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	remaining, err := store.ListObligations(ctx, storage.ObligationFilter{UserID: user.ID})
	if err != nil {
		t.Fatalf("ListObligations failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("cascade left %d obligations behind", len(remaining))
	}

	if err := store.DeleteExpenseCascade(ctx, user.ID, expense.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSettleObligation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	expense, debts := seedExpense(t, store, user.ID, 600, map[models.Participant]int64{
		"f1": 200,
		"f2": 200,
	})

	if err := store.SettleObligation(ctx, user.ID, debts[0].ID); err != nil {
		t.Fatalf("SettleObligation failed: %v", err)
	}

	// Expense stays active while a debt is still pending.
	got, err := store.GetExpense(ctx, user.ID, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got.Status != models.ExpenseActive {
		t.Errorf("expense status = %s, want active", got.Status)
	}

	if err := store.SettleObligation(ctx, user.ID, debts[1].ID); err != nil {
		t.Fatalf("SettleObligation failed: %v", err)
	}

	got, err = store.GetExpense(ctx, user.ID, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if got.Status != models.ExpenseSettled {
		t.Errorf("expense status = %s, want settled once all debts settle", got.Status)
	}

	// Settling twice fails: the obligation is no longer pending.
	if err := store.SettleObligation(ctx, user.ID, debts[0].ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound settling a settled debt, got %v", err)
	}
}

func TestFriends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	friend := &models.Friend{UserID: user.ID, Name: "Bob", Email: "bob@example.com"}
	if err := store.CreateFriend(ctx, friend); err != nil {
		t.Fatalf("CreateFriend failed: %v", err)
	}
	if friend.ID == "" {
		t.Error("Expected friend ID to be generated")
	}

	friends, err := store.ListFriends(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	if len(friends) != 1 || friends[0].Name != "Bob" {
		t.Errorf("ListFriends = %+v, want one friend Bob", friends)
	}

	if err := store.DeleteFriend(ctx, user.ID, friend.ID); err != nil {
		t.Fatalf("DeleteFriend failed: %v", err)
	}
	if err := store.DeleteFriend(ctx, user.ID, friend.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestScans(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	user := seedUser(t, store, "alice@example.com")

	scan := &models.BillScan{
		UserID:       user.ID,
		MerchantName: "Cafe Coffee Day",
		TotalAmount:  45000,
		Currency:     "INR",
		Confidence:   0.92,
		Items: []models.ScanItem{
			{Name: "Latte", Price: 25000},
			{Name: "Sandwich", Price: 20000},
		},
	}
	if err := store.CreateScan(ctx, scan); err != nil {
		t.Fatalf("CreateScan failed: %v", err)
	}

	scans, err := store.ListScans(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListScans failed: %v", err)
	}
	if len(scans) != 1 {
		t.Fatalf("got %d scans, want 1", len(scans))
	}
	if scans[0].MerchantName != "Cafe Coffee Day" || len(scans[0].Items) != 2 {
		t.Errorf("scan round trip mismatch: %+v", scans[0])
	}
}
