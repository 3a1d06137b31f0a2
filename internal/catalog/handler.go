package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type ProductTypeForm struct {
	Name        string      `json:"name" validate:"required,max=120"`
	PricingMode PricingMode `json:"pricing_mode" validate:"required"`
}

type NameForm struct {
	Name string `json:"name" validate:"required,max=120"`
}

type VariantForm struct {
	Name     string `json:"name" validate:"required,max=120"`
	Position int    `json:"position" validate:"gte=0"`
}

type ProductForm struct {
	SKU           string `json:"sku" validate:"required,max=60"`
	Name          string `json:"name" validate:"required,max=200"`
	ProductTypeID int64  `json:"product_type_id" validate:"required,gt=0"`
	StoreID       *int64 `json:"store_id,omitempty" validate:"omitempty,gt=0"`
	IsActive      bool   `json:"is_active"`
}

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

func (h *Handler) ListProductTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.ListProductTypes(r.Context())
	if err != nil {
		h.logger.Error("list product types failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"product_types": types})
}

func (h *Handler) ShowProductType(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pt, err := h.service.GetProductType(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pt)
}

func (h *Handler) CreateProductType(w http.ResponseWriter, r *http.Request) {
	var form ProductTypeForm
	if !h.decode(w, r, &form) {
		return
	}
	pt, err := h.service.CreateProductType(r.Context(), ProductType{
		Name:        form.Name,
		PricingMode: form.PricingMode,
	})
	if err != nil {
		h.logger.Error("create product type failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, pt)
}

func (h *Handler) UpdateProductType(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form ProductTypeForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := h.service.UpdateProductType(r.Context(), id, form.Name, form.PricingMode); err != nil {
		httpx.RespondError(w, err)
		return
	}
	pt, err := h.service.GetProductType(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pt)
}

func (h *Handler) DeleteProductType(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteProductType(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	typeID, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form VariantForm
	if !h.decode(w, r, &form) {
		return
	}
	v, err := h.service.CreateVariant(r.Context(), Variant{
		ProductTypeID: typeID,
		Name:          form.Name,
		Position:      form.Position,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, v)
}

func (h *Handler) RenameVariant(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "variantID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form NameForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := h.service.RenameVariant(r.Context(), id, form.Name); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "variantID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteVariant(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CreateHeadingStyle(w http.ResponseWriter, r *http.Request) {
	typeID, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form VariantForm
	if !h.decode(w, r, &form) {
		return
	}
	hs, err := h.service.CreateHeadingStyle(r.Context(), HeadingStyle{
		ProductTypeID: typeID,
		Name:          form.Name,
		Position:      form.Position,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, hs)
}

func (h *Handler) RenameHeadingStyle(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "styleID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form NameForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := h.service.RenameHeadingStyle(r.Context(), id, form.Name); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteHeadingStyle(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "styleID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteHeadingStyle(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{Search: q.Get("search")}
	filters.ProductTypeID = parseInt64Ptr(q.Get("product_type_id"))
	filters.StoreID = parseInt64Ptr(q.Get("store_id"))
	if v := q.Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}
	filters.Page, _ = strconv.Atoi(q.Get("page"))
	filters.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filters.Limit <= 0 {
		filters.Limit = 50
	}

	products, total, err := h.service.ListProducts(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products, "total": total})
}

func (h *Handler) ShowProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form ProductForm
	if !h.decode(w, r, &form) {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), Product{
		SKU:           form.SKU,
		Name:          form.Name,
		ProductTypeID: form.ProductTypeID,
		StoreID:       form.StoreID,
		IsActive:      form.IsActive,
	})
	if err != nil {
		h.logger.Error("create product failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form ProductForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := h.service.UpdateProduct(r.Context(), id, Product{
		SKU:      form.SKU,
		Name:     form.Name,
		StoreID:  form.StoreID,
		IsActive: form.IsActive,
	}); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListColors(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	colors, err := h.service.ListColors(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"colors": colors})
}

func (h *Handler) CreateColor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var form NameForm
	if !h.decode(w, r, &form) {
		return
	}
	c, err := h.service.CreateColor(r.Context(), ProductColor{ProductID: id, Name: form.Name})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

func (h *Handler) DeleteColor(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "colorID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteColor(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Request", err.Error())
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func urlID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, httpx.ErrValidation
	}
	return id, nil
}

func parseInt64Ptr(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}
