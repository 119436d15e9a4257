// Package seed resets the store to a fixed set of sample listings.
package seed

import (
	"context"
	"fmt"

	"wanderlust/internal/services"
)

func price(p float64) *float64 { return &p }

func image(u string) *string { return &u }

// Samples are the listings Run inserts.
var Samples = []services.ListingInput{
	{
		Title:       "Cozy Beachfront Cottage",
		Description: "Escape to this charming beachfront cottage for a relaxing getaway.",
		Image:       image("https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b"),
		Price:       price(1500),
		Location:    "Malibu",
		Country:     "United States",
	},
	{
		Title:       "Modern Loft in Downtown",
		Description: "Stay in the heart of the city in this stylish loft apartment.",
		Image:       image("https://images.unsplash.com/photo-1501785888041-af3ef285b470"),
		Price:       price(1200),
		Location:    "New York City",
		Country:     "United States",
	},
	{
		Title:       "Mountain Retreat",
		Description: "Unplug and unwind in this peaceful mountain cabin.",
		Image:       image("https://images.unsplash.com/photo-1571896349842-33c89424de2d"),
		Price:       price(1000),
		Location:    "Aspen",
		Country:     "United States",
	},
	{
		Title:       "Historic Villa in Tuscany",
		Description: "Experience the charm of Tuscany in this restored villa.",
		Image:       image("https://images.unsplash.com/photo-1566073771259-6a8506099945"),
		Price:       price(2500),
		Location:    "Florence",
		Country:     "Italy",
	},
	{
		Title:       "Secluded Treehouse Getaway",
		Description: "Live among the treetops in this unique treehouse retreat.",
		Price:       price(800),
		Location:    "Portland",
		Country:     "United States",
	},
	{
		Title:       "Beachfront Bungalow",
		Description: "A short walk from the sand, with a shaded veranda.",
		Image:       image(""),
		Price:       price(1200),
		Location:    "Calangut, Goa",
		Country:     "India",
	},
}

// Run deletes every listing (and so every review attached to one) and then
// inserts Samples. It returns how many listings were removed.
func Run(ctx context.Context, st services.Store) (int, error) {
	listings := services.NewListingService(st)

	existing, err := listings.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, l := range existing {
		gone, err := listings.Delete(ctx, l.ID)
		if err != nil {
			return removed, fmt.Errorf("seed: delete %s: %w", l.ID, err)
		}
		if gone != nil {
			removed++
		}
	}

	for i := range Samples {
		in := Samples[i]
		if _, err := listings.Create(ctx, &in); err != nil {
			return removed, fmt.Errorf("seed: insert %q: %w", in.Title, err)
		}
	}
	return removed, nil
}
