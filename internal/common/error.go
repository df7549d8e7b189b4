// Package common defines shared sentinel errors used across the profile
// storage layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrorNotFound covers both a genuinely absent
	// row and a row the requester is not allowed to see; the two cases are
	// indistinguishable on purpose.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
