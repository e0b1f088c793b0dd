/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
	"math/rand/v2"
)

// SearchOptions tunes Search.
type SearchOptions struct {
	// BruteForceBudget multiplied by the board count is the number of
	// random trials run when no ideal arrangement is known. Zero or
	// negative disables random trials.
	BruteForceBudget int
	// Rand drives the random trials. nil seeds from system entropy.
	Rand *rand.Rand
}

// BestResult is the outcome of a Search.
type BestResult struct {
	// Best is the lowest scoring candidate; on ties the first evaluated.
	Best Candidate
	// BaselineScore is the score of the schedule handed to Search.
	BaselineScore int
	// IdealScore is one unit of imbalance per competitor.
	IdealScore int
	// Evaluated counts the candidates considered.
	Evaluated int
}

// IsIdeal reports whether the best candidate reached the ideal score.
func (b BestResult) IsIdeal() bool {
	return b.Evaluated > 0 && b.Best.Score == b.IdealScore
}

// Improved reports whether the best candidate beats the input schedule.
func (b BestResult) Improved() bool {
	return b.Evaluated > 0 && b.Best.Score < b.BaselineScore
}

// consider returns b with c as the best candidate if c scores strictly
// lower. b itself is left untouched.
func (b BestResult) consider(c Candidate) BestResult {
	if b.Evaluated == 0 || c.Score < b.Best.Score {
		b.Best = c
	}
	b.Evaluated++

	return b
}

// Search looks for the board arrangement of s with the lowest score.
// When HasIdeal holds for the field only DiagR2L2R is tried; otherwise
// every deterministic strategy at every offset is tried, followed by
// random trials if opts allows them.
func Search(s Schedule, competitors []Competitor,
	opts SearchOptions) (BestResult, error) {

	if err := checkCompetitors(s, competitors); err != nil {
		return BestResult{}, err
	}
	baseline, err := Score(s, competitors)
	if err != nil {
		return BestResult{}, err
	}

	n := len(competitors)
	slots := baseline.Slots
	best := BestResult{
		BaselineScore: baseline.Total,
		IdealScore:    IdealScore(n),
	}

	evaluate := func(strategy Strategy, offset int, rng *rand.Rand) error {
		c, before, err := EqualizeScored(s, competitors, strategy, offset, rng)
		if err != nil {
			return err
		}
		if before != best.BaselineScore {
			return fmt.Errorf("%w: %v then %v", ErrInconsistentBaseline,
				best.BaselineScore, before)
		}
		best = best.consider(c)
		return nil
	}

	if HasIdeal(n) {
		if err := evaluate(DiagR2L2R, 0, nil); err != nil {
			return BestResult{}, err
		}
		return best, nil
	}

	for _, strategy := range DeterministicStrategies {
		for offset := 0; offset < slots; offset++ {
			if err := evaluate(strategy, offset, nil); err != nil {
				return BestResult{}, err
			}
		}
	}

	if opts.BruteForceBudget > 0 {
		rng := opts.Rand
		if rng == nil {
			rng = newRand()
		}
		for i := 0; i < slots*opts.BruteForceBudget; i++ {
			if err := evaluate(BruteForce, 0, rng); err != nil {
				return BestResult{}, err
			}
		}
	}

	return best, nil
}
