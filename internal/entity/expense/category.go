package expense

import "github.com/pkg/errors"

type Category string

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Housing        Category = "Housing"
	Utilities      Category = "Utilities"
	Entertainment  Category = "Entertainment"
	Other          Category = "Other"
)

// FilterAll is the pseudo-category that disables category filtering.
const FilterAll = "All"

var Categories = []Category{Food, Transportation, Housing, Utilities, Entertainment, Other}

var ErrUnknownCategory = errors.New("unknown category")

func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownCategory, "%q", s)
}
