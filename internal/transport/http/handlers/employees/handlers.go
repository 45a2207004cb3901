package employeeshandler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"workforce/internal/domain/records"
	"workforce/internal/platform/logger"
	"workforce/internal/requestctx"
	"workforce/internal/transport/http/api"
	"workforce/internal/transport/http/shared"
)

type Handler struct {
	Store records.StoreAPI
	Log   *logger.Logger
}

func NewHandler(store records.StoreAPI, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{Store: store, Log: log}
}

// RegisterRoutes mounts the employee routes; guard wraps every write.
func (h *Handler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(guard).Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(guard).Put("/", h.handleUpdate)
			r.With(guard).Delete("/", h.handleDeactivate)
			r.Get("/reviews", h.handleListReviews)
			r.With(guard).Post("/reviews", h.handleCreateReview)
			r.Get("/attendance", h.handleListAttendance)
			r.With(guard).Put("/attendance", h.handleUpsertAttendance)
		})
	})
}

type employeeRequest struct {
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Email      string       `json:"email"`
	Department string       `json:"department"`
	Position   string       `json:"position"`
	Salary     float64      `json:"salary"`
	HireDate   shared.Date  `json:"hireDate"`
	BirthDate  *shared.Date `json:"birthDate"`
	Phone      string       `json:"phone"`
	Status     string       `json:"status"`
}

// employee builds the record; an omitted status falls back to fallbackStatus.
func (p employeeRequest) employee(fallbackStatus string) records.Employee {
	status := canonicalStatus(p.Status)
	if status == "" {
		status = fallbackStatus
	}
	return records.Employee{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Email:      p.Email,
		Department: p.Department,
		Position:   p.Position,
		Salary:     p.Salary,
		HireDate:   p.HireDate.Time,
		BirthDate:  p.BirthDate.Ptr(),
		Phone:      p.Phone,
		Status:     status,
	}
}

type reviewRequest struct {
	ReviewDate shared.Date `json:"reviewDate"`
	Score      float64     `json:"score"`
	GoalsMet   int         `json:"goalsMet"`
	Comments   string      `json:"comments"`
}

type attendanceRequest struct {
	Date          shared.Date `json:"date"`
	HoursWorked   float64     `json:"hoursWorked"`
	OvertimeHours float64     `json:"overtimeHours"`
	Status        string      `json:"status"`
}

func (h *Handler) employeeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	v := shared.NewValidator()
	id := v.ID("employeeId", chi.URLParam(r, "employeeID"))
	if v.Reject(w, requestctx.GetRequestID(r.Context())) {
		return 0, false
	}
	return id, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	query := r.URL.Query()
	v := shared.NewValidator()
	v.Enum("status", query.Get("status"), records.EmployeeStatuses, "must be one of Active, Inactive, Terminated")
	if v.Reject(w, requestID) {
		return
	}

	filter := records.EmployeeFilter{
		Status:     canonicalStatus(query.Get("status")),
		Department: strings.TrimSpace(query.Get("department")),
		ActiveOnly: query.Get("activeOnly") == "true",
	}
	employees, err := h.Store.ListEmployees(r.Context(), filter)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	page, total := shared.Page(employees, shared.ParsePagination(r, 50, 500))
	api.Success(w, map[string]any{"items": page, "total": total}, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	var payload employeeRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	emp := payload.employee(records.EmployeeStatusActive)
	id, err := h.Store.CreateEmployee(r.Context(), emp)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	h.Log.Info("employee created", "employeeId", id, "department", emp.Department, "requestId", requestID)

	created, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	api.Created(w, created, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		shared.FailStore(w, err, "employee", requestctx.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, requestctx.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	var payload employeeRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	current, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	emp := payload.employee(current.Status)
	emp.ID = id
	if err := h.Store.UpdateEmployee(r.Context(), emp); err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	h.Log.Info("employee updated", "employeeId", id, "requestId", requestID)

	updated, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	if err := h.Store.SetEmployeeStatus(r.Context(), id, records.EmployeeStatusInactive); err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	h.Log.Info("employee deactivated", "employeeId", id, "requestId", requestID)
	api.Success(w, map[string]any{"id": id, "status": records.EmployeeStatusInactive}, requestID)
}

func (h *Handler) handleListReviews(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	reviews, err := h.Store.ListReviews(r.Context(), records.ReviewFilter{EmployeeID: id})
	if err != nil {
		shared.FailStore(w, err, "performance review", requestID)
		return
	}
	api.Success(w, reviews, requestID)
}

func (h *Handler) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	var payload reviewRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	reviewID, err := h.Store.CreateReview(r.Context(), records.PerformanceReview{
		EmployeeID: id,
		ReviewDate: payload.ReviewDate.Time,
		Score:      payload.Score,
		GoalsMet:   payload.GoalsMet,
		Comments:   payload.Comments,
	})
	if err != nil {
		shared.FailStore(w, err, "performance review", requestID)
		return
	}
	review, err := h.Store.GetReview(r.Context(), reviewID)
	if err != nil {
		shared.FailStore(w, err, "performance review", requestID)
		return
	}
	api.Created(w, review, requestID)
}

func (h *Handler) handleListAttendance(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	v := shared.NewValidator()
	from := v.OptionalDate("from", r.URL.Query().Get("from"))
	to := v.OptionalDate("to", r.URL.Query().Get("to"))
	v.DateOrder("from", from, "to", to)
	if v.Reject(w, requestID) {
		return
	}
	if _, err := h.Store.GetEmployee(r.Context(), id); err != nil {
		shared.FailStore(w, err, "employee", requestID)
		return
	}
	rows, err := h.Store.ListAttendance(r.Context(), records.AttendanceFilter{EmployeeID: id, From: from, To: to})
	if err != nil {
		shared.FailStore(w, err, "attendance record", requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleUpsertAttendance(w http.ResponseWriter, r *http.Request) {
	requestID := requestctx.GetRequestID(r.Context())
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}
	var payload attendanceRequest
	if !shared.DecodeJSON(w, r, &payload, requestID) {
		return
	}

	recordID, err := h.Store.UpsertAttendance(r.Context(), records.AttendanceRecord{
		EmployeeID:    id,
		Date:          payload.Date.Time,
		HoursWorked:   payload.HoursWorked,
		OvertimeHours: payload.OvertimeHours,
		Status:        payload.Status,
	})
	if err != nil {
		shared.FailStore(w, err, "attendance record", requestID)
		return
	}
	record, err := h.Store.GetAttendance(r.Context(), recordID)
	if err != nil {
		shared.FailStore(w, err, "attendance record", requestID)
		return
	}
	api.Success(w, record, requestID)
}

func canonicalStatus(raw string) string {
	raw = strings.TrimSpace(raw)
	for _, status := range records.EmployeeStatuses {
		if strings.EqualFold(raw, status) {
			return status
		}
	}
	return raw
}
