package reportshandler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/analytics"
	"workforce/internal/domain/reports"
	"workforce/internal/platform/logger"
	"workforce/internal/render/charts"
	"workforce/internal/render/pdf"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Builder *reports.Builder
	Charts  *charts.Renderer
	Log     *logger.Logger
}

func NewHandler(builder *reports.Builder, renderer *charts.Renderer, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{Builder: builder, Charts: renderer, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/departments", h.handleDepartments)
		r.Get("/salaries", h.handleSalaries)
		r.Get("/budget", h.handleBudget)
		r.Get("/performance", h.handlePerformance)
		r.Get("/performance/trend", h.handlePerformanceTrend)
		r.Get("/attendance", h.handleAttendance)
		r.Get("/hiring", h.handleHiring)
		r.Get("/tenure", h.handleTenure)
		r.Get("/top-performers", h.handleTopPerformers)
		r.Get("/organization", h.handleOrganization)
		r.Get("/organization/pdf", h.handleOrganizationPDF)
		r.Get("/employees/{employeeID}", h.handleEmployee)
		r.Get("/employees/{employeeID}/pdf", h.handleEmployeePDF)
		r.Get("/charts", h.handleChartNames)
		r.Get("/charts/{name}.png", h.handleChart)
	})
}

func (h *Handler) agg() *analytics.Aggregator {
	return h.Builder.Aggregator()
}

// respond writes data or maps err, keeping every report endpoint to one shape.
func respond[T any](w http.ResponseWriter, r *http.Request, entity string, load func(ctx context.Context) (T, error)) {
	requestID := requestctx.GetRequestID(r.Context())
	data, err := load(r.Context())
	if err != nil {
		shared.FailStore(w, err, entity, requestID)
		return
	}
	api.Success(w, data, requestID)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "report", h.agg().DepartmentStats)
}

func (h *Handler) handleSalaries(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "report", h.agg().SalaryAnalysis)
}

func (h *Handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "report", func(ctx context.Context) (analytics.BudgetAnalysis, error) {
		return h.agg().BudgetAnalysis(ctx, h.Builder.Budgets())
	})
}

func (h *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	limit := v.PositiveInt("limit", r.URL.Query().Get("limit"), reports.DefaultTopPerformers)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	respond(w, r, "report", func(ctx context.Context) (analytics.PerformanceAnalysis, error) {
		return h.agg().PerformanceAnalysis(ctx, limit)
	})
}

func (h *Handler) handlePerformanceTrend(w http.ResponseWriter, r *http.Request) {
	var employeeID int64
	if raw := r.URL.Query().Get("employeeId"); raw != "" {
		v := shared.NewValidator()
		employeeID = v.ID("employeeId", raw)
		if v.Reject(w, requestctx.GetRequestID(r.Context())) {
			return
		}
	}
	respond(w, r, "employee", func(ctx context.Context) (analytics.PerformanceTrend, error) {
		return h.agg().PerformanceTrend(ctx, employeeID)
	})
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	from := v.OptionalDate("from", r.URL.Query().Get("from"))
	to := v.OptionalDate("to", r.URL.Query().Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	respond(w, r, "report", func(ctx context.Context) (analytics.AttendanceSummary, error) {
		return h.agg().AttendanceSummary(ctx, from, to)
	})
}

func (h *Handler) handleHiring(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "report", h.agg().HiringTrends)
}

func (h *Handler) handleTenure(w http.ResponseWriter, r *http.Request) {
	respond(w, r, "report", h.agg().Tenure)
}

func (h *Handler) handleTopPerformers(w http.ResponseWriter, r *http.Request) {
	v := shared.NewValidator()
	limit := v.PositiveInt("limit", r.URL.Query().Get("limit"), reports.DefaultTopPerformers)
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return
	}
	respond(w, r, "report", func(ctx context.Context) ([]analytics.TopPerformer, error) {
		perf, err := h.agg().PerformanceAnalysis(ctx, limit)
		if err != nil {
			return nil, err
		}
		if perf.TopPerformers == nil {
			return []analytics.TopPerformer{}, nil
		}
		return perf.TopPerformers, nil
	})
}

func (h *Handler) handleOrganization(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	report, err := h.Builder.OrganizationReport(r.Context())
	if err != nil {
		shared.FailStore(w, err, "report", requestID)
		return
	}
	if r.URL.Query().Get("view") == "metrics" {
		api.Success(w, report.Metrics(), requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) handleEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	report, ok := h.employeeReport(w, r)
	if !ok {
		return
	}
	if r.URL.Query().Get("view") == "metrics" {
		api.Success(w, report.Metrics(), requestID)
		return
	}
	api.Success(w, report, requestID)
}

func (h *Handler) employeeReport(w http.ResponseWriter, r *http.Request) (*reports.EmployeeReport, bool) {
	requestID := requestctx.GetRequestID(r.Context())
	v := shared.NewValidator()
	id := v.ID("employeeId", chi.URLParam(r, "employeeID"))
	if v.Reject(w, requestID) {
		return nil, false
	}
	report, err := h.Builder.EmployeeReport(r.Context(), id)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return nil, false
	}
	return report, true
}

func (h *Handler) handleEmployeePDF(w http.ResponseWriter, r *http.Request) {
	report, ok := h.employeeReport(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := pdf.EmployeeReport(&buf, report); err != nil {
		h.renderFailed(w, r, "employee pdf", err)
		return
	}
	api.Binary(w, "application/pdf", "employee_"+strconv.FormatInt(report.Employee.ID, 10)+".pdf", buf.Bytes())
}

func (h *Handler) handleOrganizationPDF(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	report, err := h.Builder.OrganizationReport(r.Context())
	if err != nil {
		shared.FailStore(w, err, "report", requestID)
		return
	}
	var dashboard bytes.Buffer
	if err := h.Charts.Dashboard(&dashboard, report); err != nil {
		if !errors.Is(err, charts.ErrNoData) {
			h.renderFailed(w, r, "dashboard", err)
			return
		}
		dashboard.Reset()
	}
	var buf bytes.Buffer
	if err := pdf.OrganizationReport(&buf, report, dashboard.Bytes()); err != nil {
		h.renderFailed(w, r, "organization pdf", err)
		return
	}
	api.Binary(w, "application/pdf", "organization_report.pdf", buf.Bytes())
}

func (h *Handler) handleChartNames(w http.ResponseWriter, r *http.Request) {
	api.Success(w, charts.Names, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleChart(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	name := chi.URLParam(r, "name")
	report, err := h.Builder.OrganizationReport(r.Context())
	if err != nil {
		shared.FailStore(w, err, "report", requestID)
		return
	}

	var buf bytes.Buffer
	err = h.Charts.Render(name, report, &buf)
	switch {
	case errors.Is(err, charts.ErrUnknownChart):
		api.Fail(w, http.StatusNotFound, "unknown_chart", "unknown chart "+name, requestID)
	case errors.Is(err, charts.ErrNoData):
		api.Fail(w, http.StatusNotFound, "no_data", "no data to chart", requestID)
	case err != nil:
		h.renderFailed(w, r, "chart "+name, err)
	default:
		api.Binary(w, "image/png", name+".png", buf.Bytes())
	}
}

func (h *Handler) renderFailed(w http.ResponseWriter, r *http.Request, what string, err error) {
	requestID := requestctx.GetRequestID(r.Context())
	h.Log.Error("render failed", "what", what, "err", err, "requestId", requestID)
	api.Fail(w, http.StatusInternalServerError, "render_failed", "failed to render "+what, requestID)
}
