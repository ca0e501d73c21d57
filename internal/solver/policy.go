// internal/solver/policy.go
//
// Turn policy: picks the guess-selection mode for a turn from the game
// situation, checking rules in priority order.

package solver

// Mode is the guess-selection strategy chosen for a turn.
type Mode int

const (
	ModeStarter    Mode = iota // fixed opening word
	ModePositional             // positional entropy over the broad set
	ModeAggregate              // aggregate entropy over the strict set
	ModeBreaker                // information-only breaker word
)

func (m Mode) String() string {
	switch m {
	case ModeStarter:
		return "starter"
	case ModePositional:
		return "positional"
	case ModeAggregate:
		return "strict"
	case ModeBreaker:
		return "breaker"
	}
	return "unknown"
}

// Reason names the policy rule that fired.
type Reason int

const (
	ReasonOpening Reason = iota
	ReasonSolutionSeen
	ReasonFewCandidates
	ReasonFinalTurn
	ReasonNearlyResolved
	ReasonBreakerWindow
	ReasonOpeningEnded
	ReasonDefault
)

func (r Reason) String() string {
	switch r {
	case ReasonOpening:
		return "opening"
	case ReasonSolutionSeen:
		return "solution seen"
	case ReasonFewCandidates:
		return "few choices remain"
	case ReasonFinalTurn:
		return "final turn"
	case ReasonNearlyResolved:
		return "only similar words remain"
	case ReasonBreakerWindow:
		return "too many words remain"
	case ReasonOpeningEnded:
		return "opening moves have ended"
	case ReasonDefault:
		return "default"
	}
	return "unknown"
}

// Decision is the outcome of the turn policy.
type Decision struct {
	Mode   Mode
	Reason Reason
	// Hard is set for breaker turns that search the auxiliary pool.
	Hard bool
}

// Situation is everything the turn policy looks at.
type Situation struct {
	Turn       int // zero-based
	Turns      int
	Length     int
	HasStarter bool

	Strict    int // size of the strict set
	Matched   int // positions confirmed Exact
	Confirmed int // distinct letters confirmed present
	Complete  bool
	Similar   bool

	BreakerLastTurn bool
}

// TurnsRemaining counts the turns left after this one.
func (s Situation) TurnsRemaining() int { return s.Turns - s.Turn - 1 }

// breakerWindow is how many final turns (this one included) may spend a
// guess on a breaker because too many candidates remain.
const breakerWindow = 4

// breakerBudget is the strict-set size above which a breaker turn is worth
// more than a guess at the solution.
func (s Situation) breakerBudget() int { return s.Turns - s.Turn + 1 }

// Decide picks the strategy for one turn. Rules are tried in priority
// order and the first match wins.
func Decide(s Situation, hard bool) Decision {
	rem := s.TurnsRemaining()
	switch {
	case s.Turn == 0 && s.HasStarter:
		return Decision{Mode: ModeStarter, Reason: ReasonOpening}
	case s.Complete:
		return Decision{Mode: ModeAggregate, Reason: ReasonSolutionSeen}
	case s.Strict <= rem+1:
		return Decision{Mode: ModeAggregate, Reason: ReasonFewCandidates}
	case rem <= 0:
		return Decision{Mode: ModeAggregate, Reason: ReasonFinalTurn}
	case !s.BreakerLastTurn && (s.Confirmed >= s.Length-1 || s.Matched >= s.Length-1 || s.Similar):
		return Decision{Mode: ModeBreaker, Reason: ReasonNearlyResolved, Hard: hard}
	case !s.BreakerLastTurn && s.Turns-s.Turn <= breakerWindow && s.Strict > s.breakerBudget():
		return Decision{Mode: ModeBreaker, Reason: ReasonBreakerWindow, Hard: hard}
	case s.Turn >= 2:
		return Decision{Mode: ModeAggregate, Reason: ReasonOpeningEnded}
	}
	return Decision{Mode: ModePositional, Reason: ReasonDefault}
}
