// Package external wraps native address libraries behind the dedupe
// expander contract.
package external

import "errors"

// ErrLibpostalUnavailable is returned when the binary was built without
// cgo, so libpostal cannot be linked.
var ErrLibpostalUnavailable = errors.New("libpostal unavailable: built without cgo")
