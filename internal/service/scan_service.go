package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kmadan/splitledger/internal/metrics"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/ocr"
	"github.com/kmadan/splitledger/internal/storage"
)

// ErrScanningDisabled is returned when no OCR service is configured.
var ErrScanningDisabled = errors.New("bill scanning is not configured")

// ScanService glues the external OCR collaborator to the ledger. A scan
// result only ever seeds a split request; submitting that request goes
// through the same validation as any hand-typed one.
type ScanService struct {
	scanner ocr.Scanner
	store   storage.Store
}

// NewScanService creates a ScanService. scanner may be nil when OCR is
// not configured.
func NewScanService(scanner ocr.Scanner, store storage.Store) *ScanService {
	return &ScanService{scanner: scanner, store: store}
}

// Enabled reports whether an OCR collaborator is configured.
func (s *ScanService) Enabled() bool {
	return s.scanner != nil
}

// ScanBill submits a bill image for extraction and records the result
// in the user's scan history.
func (s *ScanService) ScanBill(ctx context.Context, userID string, image []byte, filename string) (*models.BillScan, error) {
	if s.scanner == nil {
		return nil, ErrScanningDisabled
	}

	scan, err := s.scanner.Scan(ctx, image, filename)
	if err != nil {
		metrics.BillScans.WithLabelValues("failed").Inc()
		return nil, err
	}
	scan.UserID = userID

	if err := s.store.CreateScan(ctx, scan); err != nil {
		metrics.BillScans.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to record scan: %w", err)
	}
	metrics.BillScans.WithLabelValues("ok").Inc()

	slog.Info("bill scanned",
		"user_id", userID,
		"scan_id", scan.ID,
		"merchant", scan.MerchantName,
		"confidence", scan.Confidence,
	)
	return scan, nil
}

// History returns the user's previous scans, newest first.
func (s *ScanService) History(ctx context.Context, userID string) ([]models.BillScan, error) {
	return s.store.ListScans(ctx, userID)
}

// Suggestion converts a scan into a pre-filled creation request. Every
// field is a best-effort guess for the user to adjust.
func Suggestion(scan *models.BillScan) CreateExpenseRequest {
	description := scan.MerchantName
	if description == "" {
		description = scan.Category
	}
	return CreateExpenseRequest{
		Description: description,
		TotalUnits:  scan.TotalAmount,
		PaidBy:      models.Self,
		Strategy:    models.StrategyEqual,
	}
}
