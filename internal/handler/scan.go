package handler

import (
	"io"
	"net/http"

	"github.com/kmadan/splitledger/internal/middleware"
	"github.com/kmadan/splitledger/internal/models"
	"github.com/kmadan/splitledger/internal/service"
)

// maxBillImageBytes caps uploaded bill images at 10 MB.
const maxBillImageBytes = 10 << 20

// ScanHandler serves bill-scan upload and history.
type ScanHandler struct {
	svc *service.ScanService
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(svc *service.ScanService) *ScanHandler {
	return &ScanHandler{svc: svc}
}

// Scan handles POST /api/bills/scan. The response carries the raw
// extraction plus a pre-filled expense suggestion the client may edit
// and submit through the normal creation endpoint.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxBillImageBytes); err != nil {
		respondFailure(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("bill")
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "bill image required")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxBillImageBytes))
	if err != nil {
		respondFailure(w, http.StatusBadRequest, "failed to read bill image")
		return
	}

	scan, err := h.svc.ScanBill(r.Context(), middleware.GetUserID(r.Context()), image, header.Filename)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"data":       scan,
		"suggestion": service.Suggestion(scan),
	})
}

// History handles GET /api/bills/scan-history.
func (h *ScanHandler) History(w http.ResponseWriter, r *http.Request) {
	scans, err := h.svc.History(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if scans == nil {
		scans = []models.BillScan{}
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"scans":   scans,
	})
}
