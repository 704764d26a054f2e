package http

import (
	"net/http"

	"log-stats/internal/reports"
	"log-stats/internal/shared/loggers"
	"log-stats/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router. defaultTopN applies when a year
// report request carries no top parameter.
func NewRouter(reportService reports.ReportService, defaultTopN int, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	yearsHandler := NewYearsHandler(reportService)
	yearReportHandler := NewYearReportHandler(reportService, defaultTopN)
	dailyHandler := NewDailyHandler(reportService)

	// Routes
	router.Get("/years", errorHandlingAdapter(yearsHandler))
	router.Get("/years/{"+paramYear+"}", errorHandlingAdapter(yearReportHandler))
	router.Get("/daily", errorHandlingAdapter(dailyHandler))
	router.Get("/metrics", metrics.Handler().ServeHTTP)

	return router
}
