package httpapi

import "errors"

// ErrCatalogRequired is returned when a catalog is not provided.
var ErrCatalogRequired = errors.New("catalog required")
