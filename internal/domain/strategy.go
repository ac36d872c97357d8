package domain

// AssignmentStrategy is the tie-break policy used to pick one consultant
// among several with remaining capacity. Closed enumeration: the resolver
// dispatches with an exhaustive switch.
type AssignmentStrategy string

const (
	// StrategyOptimal prefers the consultant with the fewest bookings that
	// day, then the fewest active bookings overall, then the lowest id.
	StrategyOptimal AssignmentStrategy = "optimal"

	// StrategyBalanced prefers the consultant with the fewest active
	// bookings across the whole horizon, then the lowest id.
	StrategyBalanced AssignmentStrategy = "balanced"

	// StrategyRandom picks uniformly among eligible consultants.
	StrategyRandom AssignmentStrategy = "random"

	// StrategySpecific assigns the caller-supplied consultant or fails.
	// It never silently falls back to another consultant.
	StrategySpecific AssignmentStrategy = "specific"
)

// DefaultStrategy is used when the caller does not name one
const DefaultStrategy = StrategyOptimal

// ParseAssignmentStrategy validates a strategy string.
// An empty string resolves to the default strategy.
func ParseAssignmentStrategy(s string) (AssignmentStrategy, bool) {
	if s == "" {
		return DefaultStrategy, true
	}
	strategy := AssignmentStrategy(s)
	switch strategy {
	case StrategyOptimal, StrategyBalanced, StrategyRandom, StrategySpecific:
		return strategy, true
	}
	return "", false
}
