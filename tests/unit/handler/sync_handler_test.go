package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"alazab/internal/domain"
	"alazab/internal/handler"
	"alazab/mocks"
)

func TestSyncHandler_SyncInvoice_Success(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	mockSync.On("SyncOne", mock.Anything, "AZ-INV-2025-0142", false, mock.Anything).
		Return(&domain.SyncResult{
			Success:       true,
			InvoiceNumber: "AZ-INV-2025-0142",
			SourceID:      "9001",
		}, nil)

	body, _ := json.Marshal(map[string]any{"invoice_number": "AZ-INV-2025-0142"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/invoice", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncInvoice(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	mockSync.AssertExpectations(t)
}

func TestSyncHandler_SyncInvoice_MissingNumber(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	body, _ := json.Marshal(map[string]any{"force": true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/invoice", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncInvoice(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSync.AssertNotCalled(t, "SyncOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncHandler_SyncInvoice_AlreadySynced(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	mockSync.On("SyncOne", mock.Anything, "AZ-INV-2025-0142", false, mock.Anything).
		Return(nil, domain.ErrAlreadySynced)

	body, _ := json.Marshal(map[string]any{"invoice_number": "AZ-INV-2025-0142"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/invoice", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncInvoice(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSyncHandler_SyncInvoice_FailedStageCarriesResult(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	mockSync.On("SyncOne", mock.Anything, "AZ-INV-2025-0142", true, mock.Anything).
		Return(&domain.SyncResult{
			Success:       false,
			InvoiceNumber: "AZ-INV-2025-0142",
			Stage:         domain.StageFetch,
			Error:         "invoice not found in billing source",
		}, domain.ErrSourceInvoiceNotFound)

	body, _ := json.Marshal(map[string]any{"invoice_number": "AZ-INV-2025-0142", "force": true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/invoice", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncInvoice(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"stage":"fetch"`)
}

func TestSyncHandler_SyncBatch_DefaultsToThirtyDays(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	mockSync.On("SyncAllNewSince", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		expected := time.Now().AddDate(0, 0, -30)
		return since.Sub(expected).Abs() < time.Minute
	}), mock.Anything).Return(&domain.BatchSyncResult{Total: 0}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/batch", http.NoBody)

	h.SyncBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSync.AssertExpectations(t)
}

func TestSyncHandler_SyncBatch_ExplicitSince(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	expected := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mockSync.On("SyncAllNewSince", mock.Anything, expected, mock.Anything).
		Return(&domain.BatchSyncResult{Total: 4, Succeeded: 3, Failed: 1}, nil)

	body, _ := json.Marshal(map[string]string{"since": "2025-06-01"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/batch", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncBatch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"succeeded":3`)
	mockSync.AssertExpectations(t)
}

func TestSyncHandler_SyncBatch_BadSince(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	body, _ := json.Marshal(map[string]string{"since": "last tuesday"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/sync/batch", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.SyncBatch(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSync.AssertNotCalled(t, "SyncAllNewSince", mock.Anything, mock.Anything, mock.Anything)
}

func TestSyncHandler_StorageStatus(t *testing.T) {
	mockSync := new(mocks.MockSyncService)
	h := handler.NewSyncHandler(mockSync)

	mockSync.On("StorageStatus", mock.Anything).Return(&domain.StorageStatus{
		Ready: true,
		Stats: &domain.CapacityStats{
			TotalBytes:     100,
			UsedBytes:      40,
			AvailableBytes: 60,
			PercentUsed:    40,
		},
		Breakdown: &domain.UsageBreakdown{Invoices: 25},
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/storage/status", http.NoBody)

	h.StorageStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ready":true`)
	mockSync.AssertExpectations(t)
}
