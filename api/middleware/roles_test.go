package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kolamtech/tambak-backend/pkg/enums"
)

func TestRequireElevated(t *testing.T) {
	handler := RequireElevated(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		role string
		want int
	}{
		{string(enums.MemberRoleOwner), http.StatusOK},
		{string(enums.MemberRoleAdmin), http.StatusOK},
		{string(enums.MemberRoleEmployee), http.StatusForbidden},
		{"", http.StatusForbidden},
		{"superuser", http.StatusForbidden},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/abc", nil)
		if tt.role != "" {
			req = req.WithContext(WithRole(req.Context(), tt.role))
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("role %q: expected %d got %d", tt.role, tt.want, rec.Code)
		}
	}
}
