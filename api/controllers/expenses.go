package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kolamtech/tambak-backend/api/responses"
	"github.com/kolamtech/tambak-backend/api/validators"
	"github.com/kolamtech/tambak-backend/internal/expenses"
	"github.com/kolamtech/tambak-backend/pkg/logger"
	"github.com/kolamtech/tambak-backend/pkg/pagination"
)

// ExpenseList returns expenses newest first with optional filters.
func ExpenseList(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pondID, err := validators.ParseQueryUUID(r, "pond_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListExpenses(r.Context(), expenses.ListExpensesParams{
			Category: r.URL.Query().Get("category"),
			PondID:   pondID,
			From:     from,
			To:       to,
			Limit:    limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ExpenseGet returns one expense by id.
func ExpenseGet(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "expense id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.GetExpense(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

// ExpenseCreate records an operating cost.
func ExpenseCreate(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := actorID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req expenses.UpsertExpenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.CreateExpense(r.Context(), actor, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, expense)
	}
}

// ExpenseUpdate replaces an expense's fields.
func ExpenseUpdate(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "expense id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req expenses.UpsertExpenseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		expense, err := svc.UpdateExpense(r.Context(), id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, expense)
	}
}

// ExpenseDelete removes an expense.
func ExpenseDelete(svc expenses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "expense id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteExpense(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": true})
	}
}
