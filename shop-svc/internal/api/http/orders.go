package httpapi

import (
	"net/http"

	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	orders, err := h.Orders.List(r.Context(), service.OrderFilter{
		Status:   domain.OrderStatus(query.Get("status")),
		BranchID: query.Get("branch"),
		Search:   query.Get("q"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type transitionResponse struct {
	Order      *domain.Order            `json:"order"`
	Transition *domain.StatusTransition `json:"transition"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status domain.OrderStatus `json:"status"`
	}
	if !decode(w, r, &req) {
		return
	}
	order, transition, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Order: order, Transition: transition})
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentStatus domain.PaymentStatus `json:"payment_status"`
	}
	if !decode(w, r, &req) {
		return
	}
	order, transition, err := h.Orders.UpdatePaymentStatus(r.Context(), mux.Vars(r)["id"], req.PaymentStatus)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{Order: order, Transition: transition})
}

func (h *Handler) markOrderSeen(w http.ResponseWriter, r *http.Request) {
	if err := h.Orders.MarkSeen(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrderHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Orders.History(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	qrCode, err := h.QR.Generate(order.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

// getWhatsAppLink renders the configured template for the order.
func (h *Handler) getWhatsAppLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, err := h.Orders.Get(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	settings, err := h.Settings.Get(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	branchName := order.BranchID
	if branch, err := h.Catalog.GetBranch(ctx, order.BranchID); err == nil {
		branchName = branch.Name
	}

	message := service.RenderTemplate(settings.WhatsApp.Template, *order, branchName)
	link, err := service.WhatsAppLink(settings.WhatsApp.Phone, message)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message, "link": link})
}
