package product

import (
	"regexp"
	"strings"

	"github.com/example/ec-shop/internal/domain"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugStripChars  = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators  = regexp.MustCompile(`[\s_-]+`)
	slugOuterHyphen = regexp.MustCompile(`^-+|-+$`)
)

// Category is a value object naming a product category. The slug is derived
// from the name unless supplied explicitly.
type Category struct {
	name string
	slug string
}

// NewCategory builds a category; pass an empty slug to derive it from the name.
func NewCategory(name, slug string) (Category, error) {
	if strings.TrimSpace(name) == "" {
		return Category{}, domain.NewValidationError("category name cannot be empty")
	}
	if slug == "" {
		slug = slugify(name)
	}
	if strings.TrimSpace(slug) == "" {
		return Category{}, domain.NewValidationError("category slug cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return Category{}, domain.NewValidationError(
			"category slug must contain only lowercase letters, numbers and hyphens: %s", slug)
	}
	return Category{name: strings.TrimSpace(name), slug: slug}, nil
}

func (c Category) Name() string   { return c.name }
func (c Category) Slug() string   { return c.slug }
func (c Category) String() string { return c.name }

// Equals compares structurally.
func (c Category) Equals(other Category) bool {
	return c == other
}

// slugify lowercases the name, strips non-word characters, collapses
// whitespace/underscore/hyphen runs into single hyphens and trims the ends.
func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripChars.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugOuterHyphen.ReplaceAllString(s, "")
	return s
}
