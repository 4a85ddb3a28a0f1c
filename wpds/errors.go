package wpds

import "errors"

// ErrIllegalKey is returned by AddRule when ε is passed where a real
// key is required — a rule's from-state, from-stack, or to-state
// (spec §7's IllegalKey).
var ErrIllegalKey = errors.New("wpds: epsilon key where a real key is required")
