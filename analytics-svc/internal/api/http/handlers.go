package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"restaurant-storefront/analytics-svc/internal/domain"
	"restaurant-storefront/analytics-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	dateLayout   = "2006-01-02"
	defaultDays  = 30
	defaultLimit = 10
)

type Handler struct {
	Analytics service.AnalyticsInterface
	Now       func() time.Time
	Logger    *zap.SugaredLogger
}

func NewHandler(svc service.AnalyticsInterface, now func() time.Time, logger *zap.SugaredLogger) *Handler {
	return &Handler{Analytics: svc, Now: now, Logger: logger}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/analytics").Subrouter()
	api.HandleFunc("/dashboard", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.Dashboard(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/summary", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.Summary(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/sales-by-date", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.SalesByDate(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/sales-by-category", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.SalesByCategory(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/sales-by-branch", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.SalesByBranch(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/orders-by-hour", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.OrdersByHour(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/status-distribution", h.ranged(func(r *http.Request, rg domain.Range) (any, error) {
		return h.Analytics.StatusDistribution(r.Context(), rg)
	})).Methods("GET")
	api.HandleFunc("/top-products", h.getTopProducts).Methods("GET")
	api.HandleFunc("/top-today", h.getTopToday).Methods("GET")
	api.HandleFunc("/unseen-count", h.getUnseenCount).Methods("GET")
}

func (h *Handler) ranged(query func(*http.Request, domain.Range) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rg, err := h.parseRange(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := query(r, rg)
		if err != nil {
			h.serverError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}

func (h *Handler) getTopProducts(w http.ResponseWriter, r *http.Request) {
	rg, err := h.parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := h.Analytics.TopProducts(r.Context(), rg, limit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getTopToday(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := h.Analytics.TopToday(r.Context(), limit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *Handler) getUnseenCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.Analytics.UnseenCount(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// parseRange reads from/to as calendar dates; to is inclusive.
func (h *Handler) parseRange(r *http.Request) (domain.Range, error) {
	rg := service.LastDays(h.Now(), defaultDays)
	q := r.URL.Query()
	loc := rg.From.Location()
	if v := q.Get("from"); v != "" {
		from, err := time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return rg, errBadParam("from")
		}
		rg.From = from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.ParseInLocation(dateLayout, v, loc)
		if err != nil {
			return rg, errBadParam("to")
		}
		rg.To = to.AddDate(0, 0, 1)
	}
	if !rg.From.Before(rg.To) {
		return rg, errBadParam("from")
	}
	return rg, nil
}

func parseLimit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.Atoi(v)
	if err != nil || limit < 1 {
		return 0, errBadParam("limit")
	}
	return limit, nil
}

type errBadParam string

func (e errBadParam) Error() string { return "invalid " + string(e) }

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Errorw("analytics query failed", "path", r.URL.Path, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
