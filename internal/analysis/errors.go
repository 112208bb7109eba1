package analysis

import "errors"

// ErrIncompleteAssistResult marks an assistant response that is missing a
// required field or carries unrecognizable values.
var ErrIncompleteAssistResult = errors.New("assistant returned an incomplete analysis")
