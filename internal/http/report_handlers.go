package http

import (
	"net/http"
	"strconv"

	"log-stats/internal/models"
	"log-stats/internal/reports"

	"github.com/go-chi/chi/v5"
)

const (
	paramYear = "year"
	queryTop  = "top"
)

// YearsResponse lists the years with statistics, oldest first.
type YearsResponse struct {
	Years []int `json:"years"`
}

type yearsHandler struct {
	reportService reports.ReportService
}

func NewYearsHandler(reportService reports.ReportService) AppHttpHandler {
	return &yearsHandler{reportService: reportService}
}

// Handle processes GET /years requests.
func (h *yearsHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	years := h.reportService.Years(r.Context())
	if years == nil {
		years = []int{}
	}
	return writeJSON(w, http.StatusOK, YearsResponse{Years: years})
}

type yearReportHandler struct {
	reportService reports.ReportService
	defaultTopN   int
}

func NewYearReportHandler(reportService reports.ReportService, defaultTopN int) AppHttpHandler {
	if defaultTopN <= 0 {
		defaultTopN = reports.DefaultTopN
	}
	return &yearReportHandler{
		reportService: reportService,
		defaultTopN:   defaultTopN,
	}
}

// Handle processes GET /years/{year} requests. The optional top query parameter
// limits the ranked lists.
func (h *yearReportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	rawYear := chi.URLParam(r, paramYear)
	year, err := strconv.Atoi(rawYear)
	if err != nil || year <= 0 {
		return errInvalidYear(rawYear)
	}

	topN := h.defaultTopN
	if rawTop := r.URL.Query().Get(queryTop); rawTop != "" {
		topN, err = strconv.Atoi(rawTop)
		if err != nil || topN <= 0 {
			return errInvalidTop(rawTop)
		}
	}

	report, err := h.reportService.YearReport(r.Context(), year, topN)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

type dailyHandler struct {
	reportService reports.ReportService
}

func NewDailyHandler(reportService reports.ReportService) AppHttpHandler {
	return &dailyHandler{reportService: reportService}
}

// Handle processes GET /daily requests.
func (h *dailyHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	series := h.reportService.Daily(r.Context())
	if series == nil {
		series = []models.SimpleDailyStats{}
	}
	return writeJSON(w, http.StatusOK, series)
}
