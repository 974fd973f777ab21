package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-storefront/shop-svc/internal/domain"
	"restaurant-storefront/shop-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog   service.CatalogServiceInterface
	Orders    service.OrderServiceInterface
	Checkout  service.CheckoutServiceInterface
	Customers service.CustomerServiceInterface
	Settings  service.SettingsServiceInterface
	QR        service.QRGenerator
	Logger    *zap.SugaredLogger
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/branches", h.listBranches).Methods("GET")
	r.HandleFunc("/api/branches/{id}", h.getBranch).Methods("GET")
	r.HandleFunc("/api/branches/{id}/schedule", h.getSchedule).Methods("GET")
	r.HandleFunc("/api/branches/{id}/status", h.getBranchStatus).Methods("GET")
	r.HandleFunc("/api/branches/{id}/stock", h.listStock).Methods("GET")
	r.HandleFunc("/api/categories", h.listCategories).Methods("GET")
	r.HandleFunc("/api/products", h.listProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", h.getProduct).Methods("GET")
	r.HandleFunc("/api/extra-groups", h.listExtraGroups).Methods("GET")
	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")

	r.HandleFunc("/api/checkout", h.startCheckout).Methods("POST")
	r.HandleFunc("/api/checkout/{id}", h.getCheckout).Methods("GET")
	r.HandleFunc("/api/checkout/{id}/branch", h.selectBranch).Methods("PUT")
	r.HandleFunc("/api/checkout/{id}/items", h.addItem).Methods("POST")
	r.HandleFunc("/api/checkout/{id}/items", h.removeItem).Methods("DELETE")
	r.HandleFunc("/api/checkout/{id}/items/{index}", h.updateItem).Methods("PUT")
	r.HandleFunc("/api/checkout/{id}/customer", h.setCustomer).Methods("PUT")
	r.HandleFunc("/api/checkout/{id}/next", h.nextStep).Methods("POST")
	r.HandleFunc("/api/checkout/{id}/back", h.previousStep).Methods("POST")

	r.HandleFunc("/api/check/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(requireToken)

	admin.HandleFunc("/branches", h.saveBranch).Methods("POST")
	admin.HandleFunc("/branches/{id}", h.saveBranch).Methods("PUT")
	admin.HandleFunc("/branches/{id}", h.deleteBranch).Methods("DELETE")
	admin.HandleFunc("/branches/{id}/schedule", h.saveSchedule).Methods("PUT")
	admin.HandleFunc("/categories", h.saveCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", h.saveCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", h.deleteCategory).Methods("DELETE")
	admin.HandleFunc("/products", h.saveProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", h.saveProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", h.deleteProduct).Methods("DELETE")
	admin.HandleFunc("/extra-groups", h.saveExtraGroup).Methods("POST")
	admin.HandleFunc("/extra-groups/{id}", h.saveExtraGroup).Methods("PUT")
	admin.HandleFunc("/extra-groups/{id}", h.deleteExtraGroup).Methods("DELETE")
	admin.HandleFunc("/stock", h.setStock).Methods("PUT")

	admin.HandleFunc("/orders", h.listOrders).Methods("GET")
	admin.HandleFunc("/orders/{id}", h.getOrder).Methods("GET")
	admin.HandleFunc("/orders/{id}/status", h.updateOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}/payment", h.updatePaymentStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}/seen", h.markOrderSeen).Methods("POST")
	admin.HandleFunc("/orders/{id}/history", h.getOrderHistory).Methods("GET")
	admin.HandleFunc("/orders/{id}/whatsapp", h.getWhatsAppLink).Methods("GET")

	admin.HandleFunc("/customers", h.listCustomers).Methods("GET")
	admin.HandleFunc("/customers/{id}", h.getCustomer).Methods("GET")
	admin.HandleFunc("/customers/{id}", h.deleteCustomer).Methods("DELETE")

	admin.HandleFunc("/settings/{section}", h.updateSettings).Methods("PUT")
	admin.HandleFunc("/gallery", h.listImages).Methods("GET")
	admin.HandleFunc("/gallery", h.addImage).Methods("POST")
	admin.HandleFunc("/gallery/{id}", h.deleteImage).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "shop-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, code int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(value)
}

func decode(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError maps service errors to status codes.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case domain.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrDuplicateOrder), errors.Is(err, service.ErrStepBlocked):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrPaymentRejected):
		http.Error(w, err.Error(), http.StatusPaymentRequired)
	default:
		h.Logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
