package pricing

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/prices/resolve", h.ResolvePrice)
	r.Get("/prices/buckets", h.BucketTables)

	r.Route("/price-lists", func(r chi.Router) {
		r.Get("/", h.ListPriceLists)
		r.Post("/", h.CreatePriceList)
		r.Get("/{id}", h.GetPriceList)
		r.Put("/{id}", h.UpdatePriceList)
		r.Delete("/{id}", h.DeletePriceList)
		r.Post("/{id}/adjust", h.AdjustPrices)
		r.Post("/{id}/sync", h.SyncCatalog)
		r.Get("/{id}/items", h.ListItems)
		r.Post("/{id}/items", h.CreateItem)
	})

	r.Route("/price-list-items/{itemID}", func(r chi.Router) {
		r.Put("/price", h.UpdateItemPrice)
		r.Delete("/", h.DeleteItem)
		r.Post("/discounts", h.AddDiscount)
		r.Delete("/discounts/{discountID}", h.DeleteDiscount)
		r.Get("/ranges-by-length", h.ListRangesByLength)
		r.Post("/ranges-by-length", h.AddRangeByLength)
		r.Delete("/ranges-by-length/{rangeID}", h.DeleteRangeByLength)
		r.Get("/ranges-by-dimensions", h.ListRangesByDimensions)
		r.Get("/curtain-config", h.GetCurtainConfig)
		r.Put("/curtain-config", h.SetCurtainConfig)
		r.Post("/matrix/generate", h.GenerateMatrix)
		r.Put("/matrix", h.SaveMatrix)
	})
}
