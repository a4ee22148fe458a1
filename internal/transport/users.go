package transport

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
)

type upsertUserRequest struct {
	WalletAddress string        `json:"walletAddress"`
	PublicKey     string        `json:"publicKey"`
	Profile       model.Profile `json:"profile"`
}

type purchaseRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type claimResponse struct {
	ClaimedAmount  int64 `json:"claimedAmount"`
	NewCoinBalance int64 `json:"newCoinBalance"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) upsertUser(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.Upsert(r.Context(), model.UpsertUser{
		WalletAddress: req.WalletAddress,
		PublicKey:     req.PublicKey,
		Profile:       req.Profile,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) topBuyers(w http.ResponseWriter, r *http.Request) {
	limit, err := limitQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	users, err := h.stats.TopBuyers(r.Context(), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) userByWallet(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.ByWallet(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) claimRewards(w http.ResponseWriter, r *http.Request) {
	claim, err := h.rewards.Claim(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claimResponse{
		ClaimedAmount:  claim.Amount,
		NewCoinBalance: claim.BalanceAfter,
	})
}

func (h *Handler) claimHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := limitQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	claims, err := h.rewards.History(r.Context(), chi.URLParam(r, "walletAddress"), limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, claims)
}

func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.RecordPurchase(r.Context(), chi.URLParam(r, "walletAddress"), req.Amount)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) userByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.ByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var profile model.Profile
	if err := decodeJSON(r, &profile); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), id, profile)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) updatePreferences(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var prefs model.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := h.users.UpdatePreferences(r.Context(), id, prefs)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, h.users.Deactivate)
}

func (h *Handler) reactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserActive(w, r, h.users.Reactivate)
}

func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id uuid.UUID) (model.User, error)) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	user, err := apply(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) userOrders(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	orders, err := h.users.Orders(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.stats.ForUser(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
