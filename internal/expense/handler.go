package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shri2104/smartsplit/internal/expense/split"
	"github.com/shri2104/smartsplit/pkg/middleware"
	"github.com/shri2104/smartsplit/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for expense endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListByGroup)
	r.Get("/{id}", h.GetByID)

	return r
}

// Create handles POST /expenses
// @Summary      Record a new expense
// @Description  Compute the splits with the requested method and record the expense for a group or friend pair
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Acting member required")
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	expense, err := h.service.CreateExpense(r.Context(), actorID, &req)
	if err != nil {
		if isValidationErr(err) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to record expense")
		return
	}

	response.JSONWithMessage(w, http.StatusCreated, "Expense added successfully!", expense.ToResponse())
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	expense, err := h.service.GetExpenseByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrExpenseNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get expense")
		return
	}

	response.JSON(w, http.StatusOK, expense.ToResponse())
}

// ListByGroup handles GET /expenses?group_id=
// @Summary      List group expenses
// @Tags         expenses
// @Produce      json
// @Param        group_id query string true "Group ID"
// @Param        page query int false "Page number"
// @Param        per_page query int false "Page size"
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /expenses [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id query parameter required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	expenses, total, err := h.service.ListByGroupID(r.Context(), groupID, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list expenses")
		return
	}

	expenseResponses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		expenseResponses[i] = e.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, expenseResponses, meta)
}

// isValidationErr reports whether the error is a caller mistake rather than
// a boundary failure.
func isValidationErr(err error) bool {
	switch {
	case errors.Is(err, ErrNoTarget),
		errors.Is(err, ErrBothTargets),
		errors.Is(err, ErrPayerNotParticipant),
		errors.Is(err, split.ErrNoParticipants),
		errors.Is(err, split.ErrDuplicateParticipant),
		errors.Is(err, split.ErrNonPositiveAmount),
		errors.Is(err, split.ErrMissingInput),
		errors.Is(err, split.ErrInvalidNumber),
		errors.Is(err, split.ErrNonPositiveShares),
		errors.Is(err, split.ErrInvalidPercentage),
		errors.Is(err, split.ErrUnknownMethod):
		return true
	}
	return false
}
