package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/goodnatureofminers/farmmarket-backend/internal/model"
	"github.com/goodnatureofminers/farmmarket-backend/internal/service"
)

const dateLayout = "2006-01-02"

type createOrderRequest struct {
	User                 model.Buyer     `json:"user"`
	ProductID            string          `json:"productId"`
	TransactionSignature string          `json:"transactionSignature"`
	Amount               decimal.Decimal `json:"amount"`
}

type orderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.orders.Create(r.Context(), service.PlaceOrder{
		Buyer:                req.User,
		ProductID:            req.ProductID,
		TransactionSignature: req.TransactionSignature,
		Amount:               req.Amount,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) ordersByWallet(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ByWallet(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req orderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) orderOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.stats.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handler) orderDateRange(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	stats, err := h.stats.DateRange(r.Context(), from, to)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// parseDateRange accepts RFC 3339 timestamps or calendar dates. A calendar
// endDate covers the whole day. Both bounds are required together.
func parseDateRange(start, end string) (from, to time.Time, err error) {
	if start == "" && end == "" {
		return time.Time{}, time.Time{}, nil
	}
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, model.Validationf("startDate and endDate must be given together")
	}
	if from, _, err = parseBound("startDate", start); err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, dateOnly, err := parseBound("endDate", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if dateOnly {
		to = to.AddDate(0, 0, 1)
	}
	return from, to, nil
}

func parseBound(name, raw string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, model.Validationf("invalid %s %q", name, raw)
}
