package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// DefaultImage replaces a missing or empty listing image.
const DefaultImage = "https://unsplash.com/photos/white-flower-9m5z1my-xZs"

// ErrNotFound is returned by stores when a record does not exist.
var ErrNotFound = errors.New("record not found")

type Listing struct {
	ID          string  `db:"id" bson:"_id" json:"id"`
	Title       string  `db:"title" bson:"title" json:"title"`
	Description string  `db:"description" bson:"description" json:"description"`
	Image       string  `db:"image" bson:"image" json:"image"`
	Price       float64 `db:"price" bson:"price" json:"price"`
	Location    string  `db:"location" bson:"location" json:"location"`
	Country     string  `db:"country" bson:"country" json:"country"`
	Reviews     IDList  `db:"reviews_json" bson:"reviews" json:"reviews"`
}

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	Comment   string    `bson:"comment" json:"comment"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// NormalizeImage maps an empty image to DefaultImage.
func NormalizeImage(v string) string {
	if v == "" {
		return DefaultImage
	}
	return v
}

// IDList is an ordered list of record ids. SQL stores keep it as a JSON array
// in a TEXT column.
type IDList []string

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return types.JSONText(b).String(), nil
}

// Scan decodes the column through sqlx's JSONText. NULL and empty text read
// as an empty list.
func (l *IDList) Scan(src any) error {
	if b, ok := src.([]byte); src == nil || (ok && len(b) == 0) {
		*l = IDList{}
		return nil
	}
	var j types.JSONText
	if err := j.Scan(src); err != nil {
		return fmt.Errorf("IDList: %w", err)
	}
	if len(j) == 0 {
		*l = IDList{}
		return nil
	}
	var ids []string
	if err := j.Unmarshal(&ids); err != nil {
		return fmt.Errorf("IDList: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	*l = IDList(ids)
	return nil
}
