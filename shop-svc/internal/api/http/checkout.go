package httpapi

import (
	"net/http"
	"strconv"

	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) respondSession(w http.ResponseWriter, r *http.Request, session *domain.CheckoutSession, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) startCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Start(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Get(r.Context(), mux.Vars(r)["id"])
	h.respondSession(w, r, session, err)
}

func (h *Handler) selectBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BranchID string `json:"branch_id"`
	}
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.SelectBranch(r.Context(), mux.Vars(r)["id"], req.BranchID)
	h.respondSession(w, r, session, err)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req service.AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.AddItem(r.Context(), mux.Vars(r)["id"], req)
	h.respondSession(w, r, session, err)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string                  `json:"product_id"`
		Extras    []domain.ExtraSelection `json:"extras"`
	}
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.RemoveItem(r.Context(), mux.Vars(r)["id"], req.ProductID, req.Extras)
	h.respondSession(w, r, session, err)
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "invalid line index", http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.UpdateItem(r.Context(), mux.Vars(r)["id"], index, req.Quantity)
	h.respondSession(w, r, session, err)
}

func (h *Handler) setCustomer(w http.ResponseWriter, r *http.Request) {
	var info domain.CustomerInfo
	if !decode(w, r, &info) {
		return
	}
	session, err := h.Checkout.SetCustomer(r.Context(), mux.Vars(r)["id"], info)
	h.respondSession(w, r, session, err)
}

// nextStep accepts an empty body for the steps that need no code.
func (h *Handler) nextStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if r.ContentLength != 0 && !decode(w, r, &req) {
		return
	}
	session, err := h.Checkout.Next(r.Context(), mux.Vars(r)["id"], req.Code)
	h.respondSession(w, r, session, err)
}

func (h *Handler) previousStep(w http.ResponseWriter, r *http.Request) {
	session, err := h.Checkout.Back(r.Context(), mux.Vars(r)["id"])
	h.respondSession(w, r, session, err)
}
