package handlers

import (
	"wanderlust/internal/domain"
	applog "wanderlust/internal/log"
	"wanderlust/internal/services"
	"wanderlust/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ListingHandler struct {
	Listings *services.ListingService
}

func listingID(c *fiber.Ctx) (string, error) {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Warn(c, "validation.fail", map[string]any{"field": "id"})
		return "", domain.ErrNotFound
	}
	return id, nil
}

// GET /listings
func (h *ListingHandler) Index(c *fiber.Ctx) error {
	all, err := h.Listings.List(c.UserContext())
	if err != nil {
		return err
	}
	return render(c, "listings/index", fiber.Map{"Listings": all})
}

// GET /listings/new
func (h *ListingHandler) New(c *fiber.Ctx) error {
	return render(c, "listings/new", nil)
}

// POST /listings
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	in, err := bindListing(c)
	if err != nil {
		return err
	}
	l, err := h.Listings.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	applog.Audit(c, "listing.create", map[string]any{"listing": l.ID})
	return c.Redirect("/listings")
}

// GET /listings/:id
func (h *ListingHandler) Show(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	view, err := h.Listings.Show(c.UserContext(), id)
	if err != nil {
		return err
	}
	return render(c, "listings/show", fiber.Map{"Listing": view})
}

// GET /listings/:id/edit
func (h *ListingHandler) Edit(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	l, err := h.Listings.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return render(c, "listings/edit", fiber.Map{"Listing": l})
}

// PUT /listings/:id
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	in, err := bindListing(c)
	if err != nil {
		return err
	}
	if _, err := h.Listings.Update(c.UserContext(), id, in); err != nil {
		return err
	}
	applog.Audit(c, "listing.update", map[string]any{"listing": id})
	return c.Redirect("/listings/" + id)
}

// DELETE /listings/:id
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	removed, err := h.Listings.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if removed != nil {
		applog.Audit(c, "listing.delete", map[string]any{"listing": id, "reviews": len(removed.Reviews)})
	}
	return c.Redirect("/listings")
}
