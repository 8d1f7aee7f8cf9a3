package friend

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shri2104/smartsplit/internal/settlement"
	mw "github.com/shri2104/smartsplit/pkg/middleware"
	"github.com/shri2104/smartsplit/pkg/response"
)

// AddFriendRequest represents the request to add a friend
type AddFriendRequest struct {
	FriendID string `json:"friend_id" validate:"required"`
}

// FriendResponse represents a friend in API responses
type FriendResponse struct {
	FriendID string `json:"friend_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Since    int64  `json:"since"`
}

// FriendBalanceResponse is the member's net position against one friend.
type FriendBalanceResponse struct {
	FriendID string          `json:"friend_id"`
	Balance  decimal.Decimal `json:"balance"`
	Message  string          `json:"message"`
}

// Handler handles HTTP requests for friend operations
type Handler struct {
	service *Service
}

// NewHandler creates a new friend handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for friend endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Add)
	r.Get("/", h.List)
	r.Get("/balances", h.Balances)
	r.Delete("/{friendId}", h.Remove)

	return r
}

// Add handles POST /friends
// @Summary      Add a friend
// @Description  Create a mutual friendship between the current member and another user
// @Tags         friends
// @Accept       json
// @Produce      json
// @Param        request body AddFriendRequest true "Friend request"
// @Success      201 {object} response.APIResponse{data=FriendResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /friends [post]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Member identity required")
		return
	}

	var req AddFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.FriendID == "" {
		response.BadRequest(w, "friend_id is required")
		return
	}

	friendship, err := h.service.Add(r.Context(), userID, req.FriendID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFriendship):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrAlreadyFriends):
			response.Conflict(w, err.Error())
		default:
			response.InternalError(w, "Failed to add friend")
		}
		return
	}

	response.JSON(w, http.StatusCreated, &FriendResponse{
		FriendID: friendship.FriendID,
		Since:    friendship.CreatedAt,
	})
}

// List handles GET /friends
// @Summary      List friends
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FriendResponse}
// @Router       /friends [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Member identity required")
		return
	}

	friends, err := h.service.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list friends")
		return
	}

	resp := make([]*FriendResponse, len(friends))
	for i, f := range friends {
		resp[i] = &FriendResponse{
			FriendID: f.FriendID,
			Username: f.Username,
			Email:    f.Email,
			Since:    f.CreatedAt,
		}
	}

	response.JSON(w, http.StatusOK, resp)
}

// Balances handles GET /friends/balances
// @Summary      Net balances against each friend
// @Tags         friends
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]FriendBalanceResponse}
// @Router       /friends/balances [get]
func (h *Handler) Balances(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Member identity required")
		return
	}

	balances, err := h.service.Balances(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute balances")
		return
	}

	friendIDs := make([]string, 0, len(balances))
	for id := range balances {
		friendIDs = append(friendIDs, id)
	}
	sort.Strings(friendIDs)

	resp := make([]*FriendBalanceResponse, 0, len(friendIDs))
	for _, id := range friendIDs {
		resp = append(resp, &FriendBalanceResponse{
			FriendID: id,
			Balance:  balances[id],
			Message:  settlement.BalanceMessage(balances[id]),
		})
	}

	response.JSON(w, http.StatusOK, resp)
}

// Remove handles DELETE /friends/{friendId}
// @Summary      Remove a friend
// @Tags         friends
// @Produce      json
// @Param        friendId path string true "Friend ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /friends/{friendId} [delete]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := mw.GetMemberID(r.Context())
	if !ok {
		response.Unauthorized(w, "Member identity required")
		return
	}
	friendID := chi.URLParam(r, "friendId")

	if err := h.service.Remove(r.Context(), userID, friendID); err != nil {
		if errors.Is(err, ErrFriendshipNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove friend")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Friend removed successfully"})
}
