package models

import "errors"

// ErrUnknownModel is returned by Resolve for identifiers outside the registry.
var ErrUnknownModel = errors.New("unknown model")
