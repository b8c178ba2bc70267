package middleware

import (
	"net/http"

	"github.com/kolamtech/tambak-backend/api/responses"
	"github.com/kolamtech/tambak-backend/pkg/enums"
	pkgerrors "github.com/kolamtech/tambak-backend/pkg/errors"
	"github.com/kolamtech/tambak-backend/pkg/logger"
)

// RequireRole blocks requests whose actor does not hold the exact role.
func RequireRole(role enums.MemberRole, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != string(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireElevated blocks requests unless the actor is an admin or the owner.
func RequireElevated(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, err := enums.ParseMemberRole(RoleFromContext(r.Context()))
			if err != nil || !role.IsElevated() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "elevated role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
