package catalog

import "errors"

// User-facing failures. Messages are shown to shoppers as-is.
var (
	ErrProductsUnavailable   = errors.New("Unable to load products. Please try again later.")   //nolint:staticcheck
	ErrProductUnavailable    = errors.New("Unable to load product. Please try again later.")    //nolint:staticcheck
	ErrCategoriesUnavailable = errors.New("Unable to load categories. Please try again later.") //nolint:staticcheck
)
