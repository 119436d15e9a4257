package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"wanderlust/internal/services"
	"wanderlust/internal/validate"
)

// bindListing reads listing[...] form fields or a {"listing": {...}} JSON
// body. A nil result with a nil error means no listing was sent.
func bindListing(c *fiber.Ctx) (*services.ListingInput, error) {
	if c.Is("json") {
		var body struct {
			Listing *services.ListingInput `json:"listing"`
		}
		if err := c.BodyParser(&body); err != nil {
			return nil, decodeError("listing", err)
		}
		return body.Listing, nil
	}
	if !hasFormPrefix(c, "listing[") {
		return nil, nil
	}
	bad := &validate.Error{}
	in := &services.ListingInput{
		Title:       c.FormValue("listing[title]"),
		Description: c.FormValue("listing[description]"),
		Location:    c.FormValue("listing[location]"),
		Country:     c.FormValue("listing[country]"),
		Price:       formFloat(c, "listing[price]", "listing.price", bad),
	}
	if c.Request().PostArgs().Has("listing[image]") {
		img := c.FormValue("listing[image]")
		in.Image = &img
	}
	return in, bad.OrNil()
}

// bindReview is bindListing for review[...] fields.
func bindReview(c *fiber.Ctx) (*services.ReviewInput, error) {
	if c.Is("json") {
		var body struct {
			Review *services.ReviewInput `json:"review"`
		}
		if err := c.BodyParser(&body); err != nil {
			return nil, decodeError("review", err)
		}
		return body.Review, nil
	}
	if !hasFormPrefix(c, "review[") {
		return nil, nil
	}
	bad := &validate.Error{}
	in := &services.ReviewInput{
		Comment: c.FormValue("review[comment]"),
		Rating:  formInt(c, "review[rating]", "review.rating", bad),
	}
	return in, bad.OrNil()
}

func hasFormPrefix(c *fiber.Ctx, prefix string) bool {
	found := false
	p := []byte(prefix)
	c.Request().PostArgs().VisitAll(func(k, _ []byte) {
		if bytes.HasPrefix(k, p) {
			found = true
		}
	})
	return found
}

// formFloat parses a numeric form field. An empty field is nil and left to
// the required rule.
func formFloat(c *fiber.Ctx, key, path string, bad *validate.Error) *float64 {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		bad.Add(path, "must be a number")
		return nil
	}
	return &f
}

func formInt(c *fiber.Ctx, key, path string, bad *validate.Error) *int {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		if _, ferr := strconv.ParseFloat(raw, 64); ferr == nil {
			bad.Add(path, "must be an integer")
		} else {
			bad.Add(path, "must be a number")
		}
		return nil
	}
	return &n
}

func decodeError(root string, err error) error {
	bad := &validate.Error{}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		path := root
		if ute.Field != "" {
			path = ute.Field
		}
		switch ute.Type.Kind() {
		case reflect.Int, reflect.Int64, reflect.Float64:
			if strings.HasPrefix(ute.Value, "number") {
				bad.Add(path, "must be an integer")
			} else {
				bad.Add(path, "must be a number")
			}
		case reflect.String:
			bad.Add(path, "must be a string")
		default:
			bad.Add(path, "must be of type object")
		}
		return bad
	}
	bad.Add(root, "must be of type object")
	return bad
}
