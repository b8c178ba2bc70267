package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kolamtech/tambak-backend/api/responses"
	"github.com/kolamtech/tambak-backend/api/validators"
	"github.com/kolamtech/tambak-backend/internal/debts"
	"github.com/kolamtech/tambak-backend/pkg/logger"
	"github.com/kolamtech/tambak-backend/pkg/pagination"
)

// DebtList returns receivables with derived statuses, newest first.
func DebtList(svc debts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerID, err := validators.ParseQueryUUID(r, "customer_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListDebts(r.Context(), debts.ListDebtsParams{
			Status:     r.URL.Query().Get("status"),
			CustomerID: customerID,
			Limit:      limit,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// DebtGet returns one receivable with its installment history.
func DebtGet(svc debts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "debt id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		debt, err := svc.GetDebt(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, debt)
	}
}

// DebtCreate opens a manual receivable.
func DebtCreate(svc debts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req debts.CreateDebtRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		debt, err := svc.CreateDebt(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, debt)
	}
}

// DebtPaymentCreate applies one installment against a receivable.
func DebtPaymentCreate(svc debts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "debt id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req debts.RecordPaymentRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payment, err := svc.RecordPayment(r.Context(), id, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// DebtPaymentList returns a receivable's installments, newest first.
func DebtPaymentList(svc debts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "debt id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payments, err := svc.ListPayments(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, payments)
	}
}
