package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	base := Situation{Turns: 6, Length: 5, HasStarter: true, Strict: 200}

	tests := []struct {
		name string
		edit func(*Situation)
		want Decision
	}{
		{"opening", func(s *Situation) {}, Decision{Mode: ModeStarter, Reason: ReasonOpening}},
		{"no starter", func(s *Situation) { s.HasStarter = false }, Decision{Mode: ModePositional, Reason: ReasonDefault}},
		{"solution seen", func(s *Situation) { s.Turn, s.Complete, s.Strict = 3, true, 1 }, Decision{Mode: ModeAggregate, Reason: ReasonSolutionSeen}},
		{"few candidates", func(s *Situation) { s.Turn, s.Strict = 3, 3 }, Decision{Mode: ModeAggregate, Reason: ReasonFewCandidates}},
		{"final turn", func(s *Situation) { s.Turn, s.Similar, s.Confirmed = 5, true, 4 }, Decision{Mode: ModeAggregate, Reason: ReasonFinalTurn}},
		{"similar", func(s *Situation) { s.Turn, s.Similar = 1, true }, Decision{Mode: ModeBreaker, Reason: ReasonNearlyResolved, Hard: true}},
		{"four confirmed", func(s *Situation) { s.Turn, s.Confirmed = 1, 4 }, Decision{Mode: ModeBreaker, Reason: ReasonNearlyResolved, Hard: true}},
		{"four matched", func(s *Situation) { s.Turn, s.Matched = 1, 4 }, Decision{Mode: ModeBreaker, Reason: ReasonNearlyResolved, Hard: true}},
		{"breaker window", func(s *Situation) { s.Turn, s.Strict = 2, 50 }, Decision{Mode: ModeBreaker, Reason: ReasonBreakerWindow, Hard: true}},
		{"window needs budget", func(s *Situation) { s.Turn, s.Strict = 2, 5 }, Decision{Mode: ModeAggregate, Reason: ReasonOpeningEnded}},
		{"no breaker twice", func(s *Situation) { s.Turn, s.Strict, s.BreakerLastTurn = 2, 50, true }, Decision{Mode: ModeAggregate, Reason: ReasonOpeningEnded}},
		{"no similar breaker twice", func(s *Situation) { s.Turn, s.Similar, s.BreakerLastTurn = 1, true, true }, Decision{Mode: ModePositional, Reason: ReasonDefault}},
		{"early turn", func(s *Situation) { s.Turn = 1 }, Decision{Mode: ModePositional, Reason: ReasonDefault}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.edit(&s)
			assert.Equal(t, tt.want, Decide(s, true))
		})
	}
}

func TestDecideFinalTurnIgnoresSizeAndSimilarity(t *testing.T) {
	for _, strict := range []int{2, 10, 1000} {
		for _, similar := range []bool{false, true} {
			s := Situation{Turn: 5, Turns: 6, Length: 5, HasStarter: true, Strict: strict, Similar: similar}
			assert.Equal(t, ModeAggregate, Decide(s, true).Mode, "strict=%d similar=%v", strict, similar)
		}
	}
}

func TestDecideSoftBreaker(t *testing.T) {
	s := Situation{Turn: 1, Turns: 6, Length: 5, Strict: 200, Similar: true}
	assert.False(t, Decide(s, false).Hard)
}
