package markvault

import "errors"

// ErrInvalidKind is returned when Open is given an unknown store kind.
var ErrInvalidKind = errors.New("invalid store kind")
