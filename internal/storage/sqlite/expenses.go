package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/storage"
)

// CreateExpenseWithDebts persists an expense, its shares, and its
// derived obligations inside one transaction. Either the whole unit is
// stored or nothing is.
func (s *SQLiteStore) CreateExpenseWithDebts(ctx context.Context, expense *models.Expense, debts []models.DebtObligation) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.ExpenseActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, user_id, description, total_units, currency, payer, strategy, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.UserID, expense.Description,
		expense.Total.Units, expense.Total.Currency,
		string(expense.Payer), string(expense.Strategy), string(expense.Status),
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, participant, amount_units, currency, position)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, string(share.Participant), share.Amount.Units, share.Amount.Currency, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}

	for i := range debts {
		debt := &debts[i]
		if debt.ID == "" {
			debt.ID = uuid.New().String()
		}
		if debt.CreatedAt == 0 {
			debt.CreatedAt = expense.CreatedAt
		}
		debt.UserID = expense.UserID
		debt.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO debts (id, user_id, expense_id, creditor, debtor, amount_units, currency, type, status, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			debt.ID, debt.UserID, debt.ExpenseID,
			string(debt.Creditor), string(debt.Debtor),
			debt.Amount.Units, debt.Amount.Currency,
			string(debt.Type), string(debt.Status), debt.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert debt: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves one expense with its shares in allocation order.
func (s *SQLiteStore) GetExpense(ctx context.Context, userID, expenseID string) (*models.Expense, error) {
	expense, err := s.scanExpense(s.db.QueryRowContext(ctx,
		`SELECT id, user_id, description, total_units, currency, payer, strategy, status, created_at
		 FROM expenses WHERE id = ? AND user_id = ?`,
		expenseID, userID,
	))
	if err != nil {
		return nil, err
	}
	if err := s.loadShares(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns a user's expenses, newest first, with shares.
func (s *SQLiteStore) ListExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, description, total_units, currency, payer, strategy, status, created_at
		 FROM expenses WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := s.scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadShares(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// DeleteExpenseCascade removes an expense and every obligation linked to
// it. The explicit debt delete mirrors the FK cascade so the contract
// holds even if a future backend lacks one.
func (s *SQLiteStore) DeleteExpenseCascade(ctx context.Context, userID, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM debts WHERE expense_id = ? AND user_id = ?",
		expenseID, userID,
	); err != nil {
		return fmt.Errorf("failed to delete debts: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var payer, strategy, status string
	err := row.Scan(
		&expense.ID, &expense.UserID, &expense.Description,
		&expense.Total.Units, &expense.Total.Currency,
		&payer, &strategy, &status, &expense.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}
	expense.Payer = models.Participant(payer)
	expense.Strategy = models.SplitStrategy(strategy)
	expense.Status = models.ExpenseStatus(status)
	return expense, nil
}

func (s *SQLiteStore) loadShares(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT participant, amount_units, currency FROM expense_shares
		 WHERE expense_id = ? ORDER BY position`,
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var share models.Share
		var participant string
		if err := rows.Scan(&participant, &share.Amount.Units, &share.Amount.Currency); err != nil {
			return fmt.Errorf("failed to scan share: %w", err)
		}
		share.Participant = models.Participant(participant)
		expense.Shares = append(expense.Shares, share)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate shares: %w", err)
	}
	return nil
}
