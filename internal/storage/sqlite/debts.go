package sqlite

import (
	"context"
	"fmt"

	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/storage"
)

// ListObligations returns debts matching the filter in creation order.
func (s *SQLiteStore) ListObligations(ctx context.Context, filter storage.ObligationFilter) ([]models.DebtObligation, error) {
	query := `SELECT id, user_id, expense_id, creditor, debtor, amount_units, currency, type, status, created_at
		 FROM debts WHERE user_id = ?`
	args := []any{filter.UserID}

	if filter.Participant != "" {
		switch filter.Role {
		case storage.RoleDebtor:
			query += " AND debtor = ?"
		default:
			query += " AND creditor = ?"
		}
		args = append(args, string(filter.Participant))
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	query += " ORDER BY created_at, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}
	defer rows.Close()

	var debts []models.DebtObligation
	for rows.Next() {
		var d models.DebtObligation
		var creditor, debtor, typ, status string
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ExpenseID, &creditor, &debtor,
			&d.Amount.Units, &d.Amount.Currency, &typ, &status, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan obligation: %w", err)
		}
		d.Creditor = models.Participant(creditor)
		d.Debtor = models.Participant(debtor)
		d.Type = models.DebtType(typ)
		d.Status = models.DebtStatus(status)
		debts = append(debts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate obligations: %w", err)
	}
	return debts, nil
}

// SettleObligation flips one pending obligation to settled. When the
// owning expense has no pending obligations left, the expense itself is
// marked settled.
func (s *SQLiteStore) SettleObligation(ctx context.Context, userID, obligationID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var expenseID string
	err = tx.QueryRowContext(ctx,
		"SELECT expense_id FROM debts WHERE id = ? AND user_id = ? AND status = ?",
		obligationID, userID, string(models.DebtPending),
	).Scan(&expenseID)
	if err != nil {
		return fmt.Errorf("pending obligation %s: %w", obligationID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE debts SET status = ? WHERE id = ?",
		string(models.DebtSettled), obligationID,
	); err != nil {
		return fmt.Errorf("failed to settle obligation: %w", err)
	}

	var pending int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM debts WHERE expense_id = ? AND status = ?",
		expenseID, string(models.DebtPending),
	).Scan(&pending)
	if err != nil {
		return fmt.Errorf("failed to count pending debts: %w", err)
	}
	if pending == 0 {
		if _, err := tx.ExecContext(ctx,
			"UPDATE expenses SET status = ? WHERE id = ?",
			string(models.ExpenseSettled), expenseID,
		); err != nil {
			return fmt.Errorf("failed to settle expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
