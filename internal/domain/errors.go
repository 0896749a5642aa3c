package domain

import "errors"

var (
	// ErrDataUnavailable is returned when the product store cannot be reached
	ErrDataUnavailable = errors.New("product store unavailable")

	// ErrMalformedRecord is returned when a store record fails shape validation
	ErrMalformedRecord = errors.New("malformed store record")

	// ErrInvalidSelection is returned when a pairing request is missing the
	// selected product or the target category
	ErrInvalidSelection = errors.New("invalid pairing selection")

	// ErrProductNotFound is returned when the selected product id is not in the catalog
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrSuperseded is returned when a newer pairing request replaced this one
	// while its data loads were still in flight
	ErrSuperseded = errors.New("pairing request superseded by a newer selection")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
