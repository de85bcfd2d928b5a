package capture

// DefaultStrategies returns the capture strategies available on this host in
// cascade priority order. The set is decided by a capability probe at
// startup, not a type hierarchy: each entry is an independent strategy value.
func DefaultStrategies() []Strategy {
	return platformStrategies()
}

// StrategyIDs lists the ids of the given strategies, used for the startup
// capability report.
func StrategyIDs(strategies []Strategy) []string {
	ids := make([]string, 0, len(strategies))
	for _, s := range strategies {
		ids = append(ids, s.ID())
	}
	return ids
}

// BackgroundCapable counts strategies usable without window activation.
func BackgroundCapable(strategies []Strategy) int {
	n := 0
	for _, s := range strategies {
		if !s.NeedsActivation() {
			n++
		}
	}
	return n
}
