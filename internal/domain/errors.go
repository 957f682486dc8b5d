package domain

import "errors"

var (
	ErrInvalidRange        = errors.New("start date must be before or equal to end date")
	ErrMalformedDate       = errors.New("malformed date, expected YYYY-MM-DD")
	ErrInvalidThreshold    = errors.New("distance threshold must be a non-negative number")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrCoverageUnavailable = errors.New("coverage lookup unavailable")
	ErrMalformedCoverage   = errors.New("malformed coverage response")
	ErrMissingAPIKey       = errors.New("map api key not configured")
	ErrNoSource            = errors.New("no photo source configured")
	ErrAmbiguousSource     = errors.New("more than one photo source configured")
	ErrEmptyManifest       = errors.New("manifest is empty")
	ErrInvalidManifest     = errors.New("manifest is not a JSON array of photos")
)
