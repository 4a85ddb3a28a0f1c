package wpds

import "github.com/luxfi/wpds/key"

// Configuration is a pair (p,γ) of a control state and a stack symbol,
// together with the rules that reference it (spec §3). Configurations
// are interned by (p,γ) within a single WPDS.
type Configuration struct {
	State, Stack key.Key

	// Forward holds every rule whose left-hand side is this
	// configuration.
	Forward []*Rule
	// Backward holds every rule whose right-hand side's first symbol
	// is this configuration.
	Backward []*Rule
}

// configKey returns the stable key identifying configuration (state,
// stack) within in. It doubles as the post* mid-state key
// genKey(p,γ) of spec §4.6, since a mid-state is exactly the canonical
// entry-point representative for that configuration.
func configKey(in *key.Interner, state, stack key.Key) key.Key {
	return in.Pair(state, stack)
}
