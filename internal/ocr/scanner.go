// Package ocr is the client for the external bill-scan service. The
// service returns a best-effort structured record with a confidence
// score; callers treat every field as a suggestion and re-validate
// before creating an expense from it.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/kmadan/splitledger/internal/models"
)

// ErrScanFailed is returned when the OCR service could not extract a
// usable record.
var ErrScanFailed = errors.New("bill scan failed")

// Scanner is the bill-scan collaborator.
type Scanner interface {
	// Scan submits a bill image and returns the extracted record.
	Scan(ctx context.Context, image []byte, filename string) (*models.BillScan, error)
}

// Client calls the OCR service over HTTP. OCR is slow; the request
// timeout is generous on purpose.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an OCR client for the given service URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type scanResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		MerchantName  string            `json:"merchant_name"`
		TotalAmount   int64             `json:"total_amount"`
		Currency      string            `json:"currency"`
		Date          string            `json:"date"`
		Category      string            `json:"category"`
		Items         []models.ScanItem `json:"items"`
		PaymentMethod string            `json:"payment_method"`
		Confidence    float64           `json:"confidence"`
	} `json:"data"`
}

// Scan uploads the image as multipart form data and decodes the
// extraction result.
func (c *Client) Scan(ctx context.Context, image []byte, filename string) (*models.BillScan, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("bill", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bills/scan", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrScanFailed, resp.StatusCode, body)
	}

	var decoded scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: bad response: %v", ErrScanFailed, err)
	}
	if !decoded.Success {
		return nil, fmt.Errorf("%w: %s", ErrScanFailed, decoded.Message)
	}

	return &models.BillScan{
		MerchantName:  decoded.Data.MerchantName,
		TotalAmount:   decoded.Data.TotalAmount,
		Currency:      decoded.Data.Currency,
		Date:          decoded.Data.Date,
		Category:      decoded.Data.Category,
		Items:         decoded.Data.Items,
		PaymentMethod: decoded.Data.PaymentMethod,
		Confidence:    decoded.Data.Confidence,
	}, nil
}
