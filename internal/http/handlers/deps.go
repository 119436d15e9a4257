package handlers

import (
	"wanderlust/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	ListingHandler *ListingHandler
	ReviewHandler  *ReviewHandler
}

func NewDeps(st services.Store) *Deps {
	return &Deps{
		ListingHandler: &ListingHandler{Listings: services.NewListingService(st)},
		ReviewHandler:  &ReviewHandler{Reviews: services.NewReviewService(st)},
	}
}

// Mount registers the listing and review routes followed by the catch-all
// 404, so it must come after any other routes.
func (d *Deps) Mount(app fiber.Router) {
	// /listings/new must precede /listings/:id
	app.Get("/listings", d.ListingHandler.Index)
	app.Get("/listings/new", d.ListingHandler.New)
	app.Post("/listings", d.ListingHandler.Create)
	app.Get("/listings/:id", d.ListingHandler.Show)
	app.Get("/listings/:id/edit", d.ListingHandler.Edit)
	app.Put("/listings/:id", d.ListingHandler.Update)
	app.Delete("/listings/:id", d.ListingHandler.Delete)

	app.Post("/listings/:id/reviews", d.ReviewHandler.Create)
	app.Delete("/listings/:id/reviews/:reviewId", d.ReviewHandler.Delete)

	app.Use(NotFound)
}
