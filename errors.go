package mdshow

import "errors"

// ErrNoDocument is returned when none of the document sources is available.
var ErrNoDocument = errors.New("no document found")
