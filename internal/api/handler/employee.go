package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/staffdir/internal/api/request"
	"github.com/mcoot/staffdir/internal/api/response"
	"github.com/mcoot/staffdir/internal/model"
	"github.com/mcoot/staffdir/internal/services/directory"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	directory *directory.Service
	logger    *slog.Logger
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(directoryService *directory.Service, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		directory: directoryService,
		logger:    logger,
	}
}

// List handles GET /api/employees. With a page parameter it returns
// {employees, total}; otherwise the full filtered list.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EmployeeFilter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}

	if q.Get("page") == "" {
		employees, err := h.directory.List(r.Context(), filter)
		if err != nil {
			writeError(h.logger, w, r, err)
			return
		}
		response.JSON(w, http.StatusOK, response.EmployeesFromModel(employees))
		return
	}

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("page must be an integer"))
		return
	}
	limit := 10
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil {
			writeError(h.logger, w, r, NewInvalidRequestError("limit must be an integer"))
			return
		}
	}

	result, err := h.directory.ListPaginated(r.Context(), page, limit, filter)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EmployeesResponse{
		Employees: response.EmployeesFromModel(result.Employees),
		Total:     result.Total,
	})
}

// Get handles GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	employee, err := h.directory.Get(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EmployeeFromModel(employee))
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	employee, err := h.directory.Create(r.Context(), req.ToModel())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusCreated, response.EmployeeFromModel(employee))
}

// Update handles PATCH /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid request body"))
		return
	}

	employee, err := h.directory.Update(r.Context(), id, req.ToModel())
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.JSON(w, http.StatusOK, response.EmployeeFromModel(employee))
}

// Delete handles DELETE /api/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.employeeID(w, r)
	if !ok {
		return
	}

	if err := h.directory.Delete(r.Context(), id); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *EmployeeHandler) employeeID(w http.ResponseWriter, r *http.Request) (model.EmployeeID, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(h.logger, w, r, NewInvalidRequestError("invalid employee id"))
		return 0, false
	}
	return model.EmployeeID(id), true
}
