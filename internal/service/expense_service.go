package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kmadan/splitledger/internal/calculator"
	"github.com/kmadan/splitledger/internal/metrics"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/money"
	"github.com/kmadan/splitledger/internal/notify"
	"github.com/kmadan/splitledger/internal/storage"
)

// ErrUnknownParticipant is returned when a split references someone who
// is not Self and not a friend of the acting user.
var ErrUnknownParticipant = errors.New("participant is not a known friend")

// ExpenseService orchestrates the expense lifecycle: validate the
// request, allocate the total, derive debts, persist everything
// atomically, then notify each debtor. Validation and allocation
// failures happen before any side effect; notification failures after
// persistence are counted but never fatal.
type ExpenseService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewExpenseService creates an ExpenseService with the given
// collaborators.
func NewExpenseService(store storage.Store, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// CreateExpenseRequest is the raw creation input. Amounts are minor
// units in the acting user's ledger currency.
type CreateExpenseRequest struct {
	Description  string                       `json:"description"`
	TotalUnits   int64                        `json:"total_amount"`
	PaidBy       models.Participant           `json:"paid_by"`
	Strategy     models.SplitStrategy         `json:"split_type"`
	Participants []models.Participant         `json:"participants"`
	CustomShares map[models.Participant]int64 `json:"custom_splits,omitempty"`
}

// CreateExpenseResult reports what a successful creation produced.
// NotificationsSent may legitimately be less than DebtsCreated.
type CreateExpenseResult struct {
	Expense           *models.Expense `json:"expense"`
	DebtsCreated      int             `json:"debts_created"`
	NotificationsSent int             `json:"notifications_sent"`
}

// CreateSplitExpense runs the full creation flow for one expense.
func (s *ExpenseService) CreateSplitExpense(ctx context.Context, userID string, req CreateExpenseRequest) (*CreateExpenseResult, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	friends, err := s.store.ListFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	friendByID := make(map[models.Participant]models.Friend, len(friends))
	for _, f := range friends {
		friendByID[models.Participant(f.ID)] = f
	}

	// Participants and the payer must resolve to Self or a known
	// contact before anything else runs.
	if err := resolvable(req.PaidBy, friendByID); err != nil {
		return nil, err
	}
	for _, p := range req.Participants {
		if err := resolvable(p, friendByID); err != nil {
			return nil, err
		}
	}

	splitReq := calculator.SplitRequest{
		Description:  req.Description,
		Total:        money.New(req.TotalUnits, user.Currency),
		Strategy:     req.Strategy,
		Payer:        req.PaidBy,
		Participants: req.Participants,
	}
	if len(req.CustomShares) > 0 {
		splitReq.CustomShares = make(map[models.Participant]money.Money, len(req.CustomShares))
		for p, units := range req.CustomShares {
			splitReq.CustomShares[p] = money.New(units, user.Currency)
		}
	}

	// Any allocation error stops the flow here: nothing persisted,
	// nothing notified.
	alloc, err := calculator.Allocate(splitReq)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		Description: req.Description,
		Total:       splitReq.Total,
		Payer:       req.PaidBy,
		Strategy:    req.Strategy,
		Shares:      alloc.Shares,
		Status:      models.ExpenseActive,
	}
	debts := calculator.DeriveDebts(expense.ID, req.PaidBy, alloc)

	// Persisting is the point of no return: the store writes the
	// expense and its debts as one unit or not at all.
	if err := s.store.CreateExpenseWithDebts(ctx, expense, debts); err != nil {
		return nil, fmt.Errorf("failed to persist expense: %w", err)
	}
	metrics.ExpensesCreated.Inc()
	metrics.DebtsCreated.Add(float64(len(debts)))

	sent := s.notifyDebtors(ctx, user, friendByID, expense, debts)

	slog.Info("expense created",
		"expense_id", expense.ID,
		"user_id", userID,
		"total", expense.Total.Format(),
		"debts_created", len(debts),
		"notifications_sent", sent,
	)

	return &CreateExpenseResult{
		Expense:           expense,
		DebtsCreated:      len(debts),
		NotificationsSent: sent,
	}, nil
}

func resolvable(p models.Participant, friends map[models.Participant]models.Friend) error {
	if p.IsSelf() {
		return nil
	}
	if _, ok := friends[p]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, p)
	}
	return nil
}

// notifyDebtors dispatches one notice per obligation concurrently and
// returns how many were delivered. It runs strictly after the debts are
// durable; a failed notice is logged and counted, never retried here.
func (s *ExpenseService) notifyDebtors(ctx context.Context, user *models.User, friends map[models.Participant]models.Friend, expense *models.Expense, debts []models.DebtObligation) int {
	var wg sync.WaitGroup
	var sent atomic.Int64

	for _, debt := range debts {
		wg.Add(1)
		go func(debt models.DebtObligation) {
			defer wg.Done()
			notice := notify.Notice{
				Description:      expense.Description,
				Amount:           debt.Amount,
				CounterpartyName: s.displayName(debt.Creditor, user, friends),
			}
			notice.RecipientName = s.displayName(debt.Debtor, user, friends)
			notice.RecipientEmail = s.email(debt.Debtor, user, friends)

			if err := s.notifier.Notify(ctx, notice); err != nil {
				metrics.NotificationsFailed.Inc()
				slog.Warn("debt notification failed",
					"expense_id", expense.ID,
					"debt_id", debt.ID,
					"error", err,
				)
				return
			}
			metrics.NotificationsSent.Inc()
			sent.Add(1)
		}(debt)
	}
	wg.Wait()
	return int(sent.Load())
}

func (s *ExpenseService) displayName(p models.Participant, user *models.User, friends map[models.Participant]models.Friend) string {
	if p.IsSelf() {
		return user.DisplayName
	}
	if f, ok := friends[p]; ok {
		return f.Name
	}
	return string(p)
}

func (s *ExpenseService) email(p models.Participant, user *models.User, friends map[models.Participant]models.Friend) string {
	if p.IsSelf() {
		return user.Email
	}
	if f, ok := friends[p]; ok {
		return f.Email
	}
	return ""
}

// ListExpenses returns the user's expenses, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	return s.store.ListExpenses(ctx, userID)
}

// DeleteExpense removes an expense and all obligations it owns.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	if err := s.store.DeleteExpenseCascade(ctx, userID, expenseID); err != nil {
		return err
	}
	metrics.ExpensesDeleted.Inc()
	slog.Info("expense deleted", "expense_id", expenseID, "user_id", userID)
	return nil
}

// ListDebts returns the user's pending split obligations for one role:
// debts owed to them (creditor) or owed by them (debtor).
func (s *ExpenseService) ListDebts(ctx context.Context, userID string, role storage.ObligationRole) ([]models.DebtObligation, error) {
	return s.store.ListObligations(ctx, storage.ObligationFilter{
		UserID:      userID,
		Participant: models.Self,
		Role:        role,
		Type:        models.DebtSplit,
		Status:      models.DebtPending,
	})
}

// SettleDebt marks one pending obligation settled.
func (s *ExpenseService) SettleDebt(ctx context.Context, userID, debtID string) error {
	return s.store.SettleObligation(ctx, userID, debtID)
}

// Summary computes the user's ledger position. The owed-to-me and
// owed-by-me queries are independent reads, so they are issued
// concurrently; the fold itself is pure.
func (s *ExpenseService) Summary(ctx context.Context, userID string) (calculator.LedgerSummary, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return calculator.LedgerSummary{}, fmt.Errorf("failed to load user: %w", err)
	}

	var (
		wg         sync.WaitGroup
		lent, owed []models.DebtObligation
		lentErr    error
		owedErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lent, lentErr = s.ListDebts(ctx, userID, storage.RoleCreditor)
	}()
	go func() {
		defer wg.Done()
		owed, owedErr = s.ListDebts(ctx, userID, storage.RoleDebtor)
	}()
	wg.Wait()

	if lentErr != nil {
		return calculator.LedgerSummary{}, fmt.Errorf("failed to load debts owed to user: %w", lentErr)
	}
	if owedErr != nil {
		return calculator.LedgerSummary{}, fmt.Errorf("failed to load debts owed by user: %w", owedErr)
	}

	return calculator.Summarize(models.Self, user.Currency, append(lent, owed...)), nil
}
