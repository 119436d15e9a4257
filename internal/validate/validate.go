package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	reID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	std = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their wire names (listing.price, not Listing.Price).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}

// Error is a rejected input. Details holds one message per violated rule.
type Error struct {
	Details []string
}

func (e *Error) Error() string { return strings.Join(e.Details, ",") }

// Add appends a violation message for the field at path.
func (e *Error) Add(path, msg string) {
	e.Details = append(e.Details, strconv.Quote(path)+" "+msg)
}

// OrNil returns e when it carries details and nil otherwise.
func (e *Error) OrNil() error {
	if e == nil || len(e.Details) == 0 {
		return nil
	}
	return e
}

// Struct checks in against its `validate` tags. Field paths in messages are
// rooted at root, so a missing title under root "listing" reads
// `"listing.title" is required`. A nil in fails as a missing root.
func Struct(root string, in any) error {
	if in == nil {
		return missing(root)
	}
	if rv := reflect.ValueOf(in); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return missing(root)
	}
	err := std.Struct(in)
	if err == nil {
		return nil
	}
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		return err
	}
	out := &Error{}
	for _, fe := range fes {
		out.Add(path(root, fe), message(fe))
	}
	return out
}

func missing(root string) error {
	e := &Error{}
	e.Add(root, "is required")
	return e
}

func path(root string, fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return root + "." + ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte", "min":
		return "must be greater than or equal to " + fe.Param()
	case "lte", "max":
		return "must be less than or equal to " + fe.Param()
	case "url", "http_url":
		return "must be a valid uri"
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}

// ID validates a resource identifier taken from a URL.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}
