package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmadan/splitledger/internal/models"
)

// CreateScan persists a processed bill scan. Line items are stored as a
// JSON blob; they are opaque suggestions, never queried individually.
func (s *SQLiteStore) CreateScan(ctx context.Context, scan *models.BillScan) error {
	if scan.ID == "" {
		scan.ID = uuid.New().String()
	}
	if scan.CreatedAt == 0 {
		scan.CreatedAt = time.Now().Unix()
	}

	items, err := json.Marshal(scan.Items)
	if err != nil {
		return fmt.Errorf("failed to encode scan items: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO bill_scans (id, user_id, merchant_name, total_amount, currency, scan_date, category, items, payment_method, confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID, scan.UserID, scan.MerchantName, scan.TotalAmount, scan.Currency,
		scan.Date, scan.Category, string(items), scan.PaymentMethod,
		scan.Confidence, scan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scan: %w", err)
	}
	return nil
}

// ListScans returns a user's scan history, newest first.
func (s *SQLiteStore) ListScans(ctx context.Context, userID string) ([]models.BillScan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, merchant_name, total_amount, currency, scan_date, category, items, payment_method, confidence, created_at
		 FROM bill_scans WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []models.BillScan
	for rows.Next() {
		var scan models.BillScan
		var items string
		if err := rows.Scan(
			&scan.ID, &scan.UserID, &scan.MerchantName, &scan.TotalAmount, &scan.Currency,
			&scan.Date, &scan.Category, &items, &scan.PaymentMethod,
			&scan.Confidence, &scan.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bill scan: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &scan.Items); err != nil {
			return nil, fmt.Errorf("failed to decode scan items: %w", err)
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return scans, nil
}
