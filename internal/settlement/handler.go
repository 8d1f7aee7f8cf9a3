package settlement

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	mw "github.com/shri2104/smartsplit/pkg/middleware"
	"github.com/shri2104/smartsplit/pkg/response"
)

// Handler handles HTTP requests for settlements
type Handler struct {
	service *Service
}

// NewHandler creates a new settlement handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the routes for settlements
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListByGroup)
	r.Get("/net", h.Net)
	r.Get("/balances", h.Balances)
	r.Post("/pay", h.RecordPayment)

	return r
}

// ListByGroup godoc
// @Summary List persisted settlements for a group
// @Tags settlements
// @Produce json
// @Param group_id query string true "Group ID"
// @Success 200 {array} SettlementResponse
// @Router /settlements [get]
func (h *Handler) ListByGroup(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	settlements, err := h.service.ListByGroupID(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to list settlements")
		return
	}

	resp := make([]SettlementResponse, 0, len(settlements))
	for _, s := range settlements {
		resp = append(resp, ToResponse(s))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Net godoc
// @Summary Compute the minimal transfer intents for a group
// @Tags settlements
// @Produce json
// @Param group_id query string true "Group ID"
// @Success 200 {array} NetSettlementResponse
// @Router /settlements/net [get]
func (h *Handler) Net(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	intents, err := h.service.NetSettlements(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute settlements")
		return
	}

	resp := make([]NetSettlementResponse, 0, len(intents))
	for _, s := range intents {
		s.GroupID = groupID
		name, upiID := h.service.Contact(r.Context(), s.To)
		resp = append(resp, ToNetResponse(s, name, upiID))
	}
	response.JSON(w, http.StatusOK, resp)
}

// Balances godoc
// @Summary Adjusted balances of every group member
// @Tags settlements
// @Produce json
// @Param group_id query string true "Group ID"
// @Success 200 {array} MemberBalanceResponse
// @Router /settlements/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	groupID := r.URL.Query().Get("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	balances, err := h.service.GroupBalances(r.Context(), groupID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	members := make([]string, 0, len(balances))
	for id := range balances {
		members = append(members, id)
	}
	sort.Strings(members)

	resp := make([]MemberBalanceResponse, 0, len(members))
	for _, id := range members {
		resp = append(resp, MemberBalanceResponse{
			MemberID: id,
			Balance:  balances[id],
			Message:  BalanceMessage(balances[id]),
		})
	}
	response.JSON(w, http.StatusOK, resp)
}

// RecordPayment godoc
// @Summary Record a full or partial payment against a transfer intent
// @Tags settlements
// @Accept json
// @Produce json
// @Param payment body RecordPaymentRequest true "Payment data"
// @Success 200 {object} SettlementResponse
// @Router /settlements/pay [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := mw.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Member identity required")
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID == "" || req.From == "" || req.To == "" {
		response.BadRequest(w, "group_id, from and to are required")
		return
	}

	intent := &Settlement{
		GroupID: req.GroupID,
		From:    req.From,
		To:      req.To,
		Amount:  req.Amount,
	}

	result, err := h.service.RecordPartialPayment(r.Context(), actorID, req.GroupID, intent, req.AmountPaid)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotDebtor):
			response.Forbidden(w, err.Error())
		case errors.Is(err, ErrNonPositivePayment), errors.Is(err, ErrExceedsRemaining):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to record payment")
		}
		return
	}

	response.JSONWithMessage(w, http.StatusOK, result.Message, ToResponse(result.Settlement))
}
