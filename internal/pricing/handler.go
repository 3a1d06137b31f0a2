package pricing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/decora-erp/decora-erp/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	resolver *Resolver
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, resolver *Resolver) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		resolver: resolver,
		validate: validator.New(),
	}
}

// ResolvePrice serves ad-hoc "get price" lookups for quotation forms.
func (h *Handler) ResolvePrice(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := ResolveRequest{}
	req.ProductID, _ = strconv.ParseInt(q.Get("product_id"), 10, 64)
	req.StoreID, _ = strconv.ParseInt(q.Get("store_id"), 10, 64)
	req.VariantID = parseInt64Ptr(q.Get("variant_id"))
	req.HeadingStyleID = parseInt64Ptr(q.Get("heading_style_id"))
	req.Width = parseFloatPtr(q.Get("width"))
	req.Height = parseFloatPtr(q.Get("height"))

	res, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// BucketTables returns the fixed range headers for pricing grids.
func (h *Handler) BucketTables(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, BucketTablesResponse{
		Width:         WidthBuckets,
		Length:        LengthBuckets,
		SpecialLength: SpecialLengthBuckets,
	})
}

func (h *Handler) ListPriceLists(w http.ResponseWriter, r *http.Request) {
	filters := ListFilters{Search: r.URL.Query().Get("search")}
	filters.StoreID = parseInt64Ptr(r.URL.Query().Get("store_id"))
	if v := r.URL.Query().Get("is_active"); v != "" {
		active := v == "true"
		filters.IsActive = &active
	}

	lists, err := h.service.ListPriceLists(r.Context(), filters)
	if err != nil {
		h.logger.Error("list price lists failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"price_lists": lists})
}

func (h *Handler) GetPriceList(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	pl, err := h.service.GetPriceList(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pl)
}

func (h *Handler) CreatePriceList(w http.ResponseWriter, r *http.Request) {
	var req CreatePriceListRequest
	if !h.decode(w, r, &req) {
		return
	}
	pl, err := h.service.CreatePriceList(r.Context(), PriceList{
		Name:          req.Name,
		StoreID:       req.StoreID,
		ProductTypeID: req.ProductTypeID,
		IsActive:      req.IsActive,
	})
	if err != nil {
		h.logger.Error("create price list failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, pl)
}

func (h *Handler) UpdatePriceList(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdatePriceListRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.service.UpdatePriceList(r.Context(), id, PriceList{
		Name:     req.Name,
		StoreID:  req.StoreID,
		IsActive: req.IsActive,
	}); err != nil {
		httpx.RespondError(w, err)
		return
	}
	pl, err := h.service.GetPriceList(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, pl)
}

func (h *Handler) DeletePriceList(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeletePriceList(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AdjustPrices(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req AdjustPricesRequest
	if !h.decode(w, r, &req) {
		return
	}
	n, err := h.service.AdjustPrices(r.Context(), id, req.Percent)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"adjusted": n})
}

func (h *Handler) SyncCatalog(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	n, err := h.service.SyncCatalog(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"inserted": n})
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	items, err := h.service.ListItems(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req CreateItemRequest
	if !h.decode(w, r, &req) {
		return
	}
	item, err := h.service.CreateItem(r.Context(), PriceListItem{
		PriceListID: id,
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		Price:       req.Price,
	})
	if err != nil {
		h.logger.Error("create price list item failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateItemPrice(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req UpdateItemPriceRequest
	if !h.decode(w, r, &req) {
		return
	}
	rowVersion, err := h.service.UpdateItemPrice(r.Context(), id, req.Price, req.RowVersion)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"row_version": rowVersion})
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddDiscount(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req AddDiscountRequest
	if !h.decode(w, r, &req) {
		return
	}
	d, err := h.service.AddDiscount(r.Context(), Discount{
		PriceListItemID: itemID,
		Price:           req.Price,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		Priority:        req.Priority,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, d)
}

func (h *Handler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	discountID, err := urlID(r, "discountID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteDiscount(r.Context(), itemID, discountID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRangesByLength(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ranges, err := h.service.ListRangesByLength(r.Context(), itemID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ranges": ranges})
}

func (h *Handler) AddRangeByLength(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req AddRangeByLengthRequest
	if !h.decode(w, r, &req) {
		return
	}
	row, err := h.service.AddRangeByLength(r.Context(), RangeByLength{
		PriceListItemID: itemID,
		Min:             req.Min,
		Max:             req.Max,
		Price:           req.Price,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, row)
}

func (h *Handler) DeleteRangeByLength(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	rangeID, err := urlID(r, "rangeID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.DeleteRangeByLength(r.Context(), itemID, rangeID); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRangesByDimensions(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	ranges, err := h.service.ListRangesByDimensions(r.Context(), itemID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"ranges": ranges})
}

func (h *Handler) GetCurtainConfig(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	cfg, err := h.service.GetCurtainConfig(r.Context(), itemID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) SetCurtainConfig(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req CurtainConfigRequest
	if !h.decode(w, r, &req) {
		return
	}
	cfg, err := h.service.SetCurtainConfig(r.Context(), CurtainPricingConfig{
		PriceListItemID: itemID,
		BasePrice:       req.BasePrice,
		TaxPercent:      req.TaxPercent,
		PricingType:     req.PricingType,
		Margins:         req.Margins,
	})
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, cfg)
}

func (h *Handler) GenerateMatrix(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	n, err := h.service.GenerateMatrix(r.Context(), itemID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cells": n})
}

func (h *Handler) SaveMatrix(w http.ResponseWriter, r *http.Request) {
	itemID, err := urlID(r, "itemID")
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	var req SaveMatrixRequest
	if !h.decode(w, r, &req) {
		return
	}
	cells := make(map[BucketKey]float64, len(req.Cells))
	for _, cell := range req.Cells {
		cells[BucketKey{Width: cell.Width, Height: cell.Height}] = cell.Price
	}
	n, err := h.service.SaveMatrix(r.Context(), itemID, req.PricingType, cells)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"cells": n})
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

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
