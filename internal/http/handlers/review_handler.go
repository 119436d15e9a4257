package handlers

import (
	applog "wanderlust/internal/log"
	"wanderlust/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

// POST /listings/:id/reviews
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	id, err := listingID(c)
	if err != nil {
		return err
	}
	in, err := bindReview(c)
	if err != nil {
		return err
	}
	r, err := h.Reviews.Create(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	applog.Audit(c, "review.create", map[string]any{"listing": id, "review": r.ID, "rating": r.Rating})
	return c.Redirect("/listings/" + id)
}

// DELETE /listings/:id/reviews/:reviewId
func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	id, rid := c.Params("id"), c.Params("reviewId")
	if err := h.Reviews.Delete(c.UserContext(), id, rid); err != nil {
		return err
	}
	applog.Audit(c, "review.delete", map[string]any{"listing": id, "review": rid})
	return c.Redirect("/listings/" + id)
}
