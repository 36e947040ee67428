package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubIndexStatus struct {
	ready bool
	n     int
}

func (s stubIndexStatus) Ready() bool { return s.ready }
func (s stubIndexStatus) Len() int    { return s.n }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		index      stubIndexStatus
		wantStatus int
		wantState  string
	}{
		{
			name:       "ready index is healthy",
			index:      stubIndexStatus{ready: true, n: 42},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "indexing in progress",
			index:      stubIndexStatus{ready: false, n: 10},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "initializing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.index)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var got HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if got.Status != tt.wantState {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantState)
			}
			if got.IndexedChunks != tt.index.n {
				t.Errorf("IndexedChunks = %d, want %d", got.IndexedChunks, tt.index.n)
			}
		})
	}
}
