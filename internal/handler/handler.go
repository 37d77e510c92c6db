// Package handler exposes the group-buy service as JSON over HTTP for the local frontend.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmynk/groupbuy/internal/groupbuy"
	"github.com/mmynk/groupbuy/internal/models"
	"github.com/mmynk/groupbuy/internal/service"
)

const maxBodyBytes = 1 << 20

// Handler serves the /api routes.
type Handler struct {
	svc *service.GroupBuyService
}

// New creates a Handler over svc.
func New(svc *service.GroupBuyService) *Handler {
	return &Handler{svc: svc}
}

// Register adds every API route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/groupbuys", h.listGroupBuys)
	mux.HandleFunc("POST /api/groupbuys", h.createGroupBuy)
	mux.HandleFunc("GET /api/groupbuys/{id}", h.getGroupBuy)
	mux.HandleFunc("DELETE /api/groupbuys/{id}", h.deleteGroupBuy)
	mux.HandleFunc("GET /api/groupbuys/{id}/delete-preview", h.previewDeleteGroupBuy)
	mux.HandleFunc("POST /api/groupbuys/{id}/orders", h.addOrder)
	mux.HandleFunc("PUT /api/groupbuys/{id}/orders/{orderID}", h.editOrder)
	mux.HandleFunc("POST /api/groupbuys/{id}/orders/{orderID}/toggle-paid", h.toggleOrderPaid)
	mux.HandleFunc("DELETE /api/groupbuys/{id}/orders/{orderID}", h.deleteOrder)
	mux.HandleFunc("GET /api/groupbuys/{id}/orders/{orderID}/delete-preview", h.previewDeleteOrder)
}

type createGroupBuyRequest struct {
	Title string `json:"title"`
}

// orderRequest accepts price and quantity as JSON numbers or numeric strings.
type orderRequest struct {
	BuyerName string      `json:"buyerName"`
	ItemName  string      `json:"itemName"`
	Price     json.Number `json:"price"`
	Quantity  json.Number `json:"quantity"`
	IsPaid    bool        `json:"isPaid"`
}

func (o orderRequest) input() models.OrderInput {
	return models.OrderInput{
		BuyerName: o.BuyerName,
		ItemName:  o.ItemName,
		Price:     o.Price.String(),
		Quantity:  o.Quantity.String(),
		IsPaid:    o.IsPaid,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listGroupBuys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) createGroupBuy(w http.ResponseWriter, r *http.Request) {
	var req createGroupBuyRequest
	if !decode(w, r, &req) {
		return
	}

	gb, err := h.svc.CreateGroupBuy(r.Context(), req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gb)
}

func (h *Handler) getGroupBuy(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.Detail(r.PathValue("id"), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// deleteGroupBuy answers 204 even if the group buy is already gone.
func (h *Handler) deleteGroupBuy(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteGroupBuy(r.Context(), r.PathValue("id"))
	if err != nil && !errors.Is(err, groupbuy.ErrNotFound) {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) previewDeleteGroupBuy(w http.ResponseWriter, r *http.Request) {
	preview, err := h.svc.PreviewDeleteGroupBuy(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func (h *Handler) addOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.svc.AddOrder(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) editOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if !decode(w, r, &req) {
		return
	}

	order, err := h.svc.EditOrder(r.Context(), r.PathValue("id"), r.PathValue("orderID"), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) toggleOrderPaid(w http.ResponseWriter, r *http.Request) {
	order, err := h.svc.ToggleOrderPaid(r.Context(), r.PathValue("id"), r.PathValue("orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// deleteOrder answers 204 even if the order is already gone.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteOrder(r.Context(), r.PathValue("id"), r.PathValue("orderID"))
	if err != nil && !errors.Is(err, groupbuy.ErrNotFound) {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) previewDeleteOrder(w http.ResponseWriter, r *http.Request) {
	preview, err := h.svc.PreviewDeleteOrder(r.PathValue("id"), r.PathValue("orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, groupbuy.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, groupbuy.ErrEmptyTitle),
		errors.Is(err, groupbuy.ErrInvalidOrder),
		errors.Is(err, groupbuy.ErrInvalidCollection),
		errors.Is(err, groupbuy.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
