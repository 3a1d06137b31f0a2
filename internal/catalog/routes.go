package catalog

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/product-types", func(r chi.Router) {
		r.Get("/", h.ListProductTypes)
		r.Post("/", h.CreateProductType)
		r.Get("/{id}", h.ShowProductType)
		r.Put("/{id}", h.UpdateProductType)
		r.Delete("/{id}", h.DeleteProductType)
		r.Post("/{id}/variants", h.CreateVariant)
		r.Put("/{id}/variants/{variantID}", h.RenameVariant)
		r.Delete("/{id}/variants/{variantID}", h.DeleteVariant)
		r.Post("/{id}/heading-styles", h.CreateHeadingStyle)
		r.Put("/{id}/heading-styles/{styleID}", h.RenameHeadingStyle)
		r.Delete("/{id}/heading-styles/{styleID}", h.DeleteHeadingStyle)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Post("/", h.CreateProduct)
		r.Get("/{id}", h.ShowProduct)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
		r.Get("/{id}/colors", h.ListColors)
		r.Post("/{id}/colors", h.CreateColor)
		r.Delete("/{id}/colors/{colorID}", h.DeleteColor)
	})
}
