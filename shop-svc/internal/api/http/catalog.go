package httpapi

import (
	"net/http"

	"restaurant-storefront/shop-svc/internal/domain"

	"github.com/gorilla/mux"
)

func (h *Handler) listBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.Catalog.ListBranches(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, branches)
}

func (h *Handler) getBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.Catalog.GetBranch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, branch)
}

func (h *Handler) saveBranch(w http.ResponseWriter, r *http.Request) {
	var branch domain.Branch
	if !decode(w, r, &branch) {
		return
	}
	code := http.StatusCreated
	if id, ok := mux.Vars(r)["id"]; ok {
		branch.ID = id
		code = http.StatusOK
	}
	if err := h.Catalog.SaveBranch(r.Context(), &branch); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, branch)
}

func (h *Handler) deleteBranch(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteBranch(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Catalog.GetSchedule(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (h *Handler) saveSchedule(w http.ResponseWriter, r *http.Request) {
	var schedule domain.WeekSchedule
	if !decode(w, r, &schedule) {
		return
	}
	schedule.BranchID = mux.Vars(r)["id"]
	if err := h.Catalog.SaveSchedule(r.Context(), schedule); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (h *Handler) getBranchStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Catalog.BranchStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.Catalog.ListStock(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stock)
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var req domain.StockItem
	if !decode(w, r, &req) {
		return
	}
	item, err := h.Catalog.SetStock(r.Context(), req.ProductID, req.BranchID, req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.ListCategories(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) saveCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if !decode(w, r, &category) {
		return
	}
	code := http.StatusCreated
	if id, ok := mux.Vars(r)["id"]; ok {
		category.ID = id
		code = http.StatusOK
	}
	if err := h.Catalog.SaveCategory(r.Context(), &category); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteCategory(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.ListProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	var product domain.Product
	if !decode(w, r, &product) {
		return
	}
	code := http.StatusCreated
	if id, ok := mux.Vars(r)["id"]; ok {
		product.ID = id
		code = http.StatusOK
	}
	if err := h.Catalog.SaveProduct(r.Context(), &product); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, product)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listExtraGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Catalog.ListExtraGroups(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) saveExtraGroup(w http.ResponseWriter, r *http.Request) {
	var group domain.ExtraGroup
	if !decode(w, r, &group) {
		return
	}
	code := http.StatusCreated
	if id, ok := mux.Vars(r)["id"]; ok {
		group.ID = id
		code = http.StatusOK
	}
	if err := h.Catalog.SaveExtraGroup(r.Context(), &group); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, code, group)
}

func (h *Handler) deleteExtraGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteExtraGroup(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
