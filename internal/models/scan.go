package models

// ScanItem is one line item extracted from a scanned bill.
type ScanItem struct {
	Name  string `json:"name"`
	Price int64  `json:"price"` // minor units, best effort
}

// BillScan is the best-effort structured record returned by the external
// OCR service for an uploaded bill image. Every field is a suggestion:
// a scan only seeds a split request, it never bypasses validation.
type BillScan struct {
	// ID is the unique identifier for the scan (UUID format).
	ID string `json:"id"`

	// UserID is the account that uploaded the bill.
	UserID string `json:"-"`

	MerchantName  string     `json:"merchant_name,omitempty"`
	TotalAmount   int64      `json:"total_amount,omitempty"` // minor units
	Currency      string     `json:"currency,omitempty"`
	Date          string     `json:"date,omitempty"`
	Category      string     `json:"category,omitempty"`
	Items         []ScanItem `json:"items,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`

	// Confidence is the OCR service's own estimate in [0, 1].
	Confidence float64 `json:"confidence"`

	// CreatedAt is the Unix timestamp when the scan was processed.
	CreatedAt int64 `json:"created_at"`
}
