package controllers

import (
	"net/http"
	"time"

	"github.com/kolamtech/tambak-backend/api/responses"
	"github.com/kolamtech/tambak-backend/api/validators"
	"github.com/kolamtech/tambak-backend/internal/reports"
	"github.com/kolamtech/tambak-backend/pkg/logger"
)

// ReportSummary returns income, expenses, profit, and outstanding receivables
// for an optional date range.
func ReportSummary(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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
		if to != nil {
			// Inclusive upper bound for whole-day ranges.
			end := to.Add(24*time.Hour - time.Second)
			to = &end
		}

		summary, err := svc.Summary(r.Context(), from, to)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// ReportMonthly returns per-month income, expenses, and profit for one year.
func ReportMonthly(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, err := validators.ParseQueryInt(r, "year", time.Now().Year(), 2000, 2200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		monthly, err := svc.Monthly(r.Context(), year)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, monthly)
	}
}
