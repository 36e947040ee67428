package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"codecopilot/internal/compliance"
)

func TestRulesHandler(t *testing.T) {
	handler := NewRulesHandler(compliance.SeededRules())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/rules", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got RulesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Count != 4 || len(got.Rules) != 4 {
		t.Errorf("expected 4 rules, got %+v", got)
	}
	if got.Rules[0].ID != "R001" {
		t.Errorf("first rule = %+v", got.Rules[0])
	}
}

func TestRulesHandlerMethodNotAllowed(t *testing.T) {
	handler := NewRulesHandler(compliance.SeededRules())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/rules", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
