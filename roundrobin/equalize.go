/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Strategy picks, for every round, which board trades places with board 1.
type Strategy int

const (
	// DiagL2R walks the swap target left to right, one board per round.
	DiagL2R Strategy = iota
	// DiagR2L walks the swap target right to left.
	DiagR2L
	// DiagL2R2L goes left to right for one pass of the boards, then back.
	DiagL2R2L
	// DiagR2L2R goes right to left for one pass of the boards, then back.
	// It reaches the ideal score whenever HasIdeal holds.
	DiagR2L2R
	// Cross alternates between a left and a right leaning target.
	Cross
	// BruteForce picks targets from shuffled board permutations.
	BruteForce
)

var strategyNames = []string{
	DiagL2R:    "DIAG_L2R",
	DiagR2L:    "DIAG_R2L",
	DiagL2R2L:  "DIAG_L2R2L",
	DiagR2L2R:  "DIAG_R2L2R",
	Cross:      "CROSS",
	BruteForce: "BRUTE_FORCE",
}

// DeterministicStrategies lists every strategy that does not consume
// randomness, in search order.
var DeterministicStrategies = []Strategy{DiagL2R, DiagR2L, DiagL2R2L,
	DiagR2L2R, Cross}

func (s Strategy) String() string {
	if s.valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) valid() bool {
	return s >= DiagL2R && s <= BruteForce
}

// ParseStrategy maps a strategy name such as "DIAG_R2L2R" (any case) to a
// Strategy.
func ParseStrategy(name string) (Strategy, error) {
	up := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == up {
			return Strategy(i), nil
		}
	}

	return DiagL2R, fmt.Errorf("%w %q; valid: %v", ErrUnknownStrategy, name,
		strings.Join(strategyNames, ", "))
}

// target returns the board index (possibly negative, counting from the end)
// that trades places with board 0 in round r.
func (s Strategy) target(r, slots int) int {
	pass := (r / slots) % 2
	switch s {
	case DiagL2R:
		return r % slots
	case DiagR2L:
		return -((r + 1) % slots)
	case DiagL2R2L:
		if pass == 0 {
			return r % slots
		}
		return -((r + 2) % slots)
	case DiagR2L2R:
		if pass == 0 {
			return -((r + 1) % slots)
		}
		return (r + 1) % slots
	case Cross:
		if r%2 == 0 {
			return (r / 2) % slots
		}
		return -((r/2 + 1) % slots)
	}

	return 0
}

// boardShuffler hands out board indexes without replacement, reshuffling
// once every board has been used.
type boardShuffler struct {
	rng   *rand.Rand
	slots int
	perm  []int
}

func (b *boardShuffler) next() int {
	if len(b.perm) == 0 {
		b.perm = b.rng.Perm(b.slots)
	}
	ret := b.perm[0]
	b.perm = b.perm[1:]

	return ret
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Equalize returns a copy of s in which, for each round, board 1 trades
// places with the board chosen by strategy. offset shifts the chosen board
// for the deterministic strategies. rng is only consumed by BruteForce;
// nil means seed from system entropy.
func Equalize(s Schedule, strategy Strategy, offset int,
	rng *rand.Rand) (Schedule, error) {

	if !strategy.valid() {
		return nil, fmt.Errorf("%w %v; valid: %v", ErrUnknownStrategy,
			int(strategy), strings.Join(strategyNames, ", "))
	}
	ret := s.Clone()
	slots := s.SlotCount()
	if slots == 0 {
		return ret, nil
	}

	var shuffler *boardShuffler
	if strategy == BruteForce {
		if rng == nil {
			rng = newRand()
		}
		shuffler = &boardShuffler{rng: rng, slots: slots}
	}

	for r, rd := range ret {
		var j int
		if shuffler != nil {
			j = shuffler.next()
		} else {
			j = strategy.target(r, slots) + offset
			j = ((j % slots) + slots) % slots
		}
		if j >= len(rd) {
			continue
		}
		rd[0], rd[j] = rd[j], rd[0]
	}

	return ret, nil
}

// Candidate is one evaluated rearrangement of a schedule.
type Candidate struct {
	Strategy Strategy
	Offset   int
	Score    int

	schedule Schedule
}

// Schedule returns a copy of the candidate's schedule.
func (c Candidate) Schedule() Schedule {
	return c.schedule.Clone()
}

// EqualizeScored applies strategy to s after checking that s is made of
// exactly competitors, and scores the schedule before and after. It
// returns the candidate and the score of the untouched schedule.
func EqualizeScored(s Schedule, competitors []Competitor, strategy Strategy,
	offset int, rng *rand.Rand) (Candidate, int, error) {

	if err := checkCompetitors(s, competitors); err != nil {
		return Candidate{}, 0, err
	}
	before, err := Score(s, competitors)
	if err != nil {
		return Candidate{}, 0, err
	}
	eq, err := Equalize(s, strategy, offset, rng)
	if err != nil {
		return Candidate{}, 0, err
	}
	after, err := Score(eq, competitors)
	if err != nil {
		return Candidate{}, 0, err
	}

	return Candidate{
		Strategy: strategy,
		Offset:   offset,
		Score:    after.Total,
		schedule: eq,
	}, before.Total, nil
}
