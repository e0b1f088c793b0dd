/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
	"strings"
)

// HasIdeal reports whether DiagR2L2R applied to Berger tables reaches the
// ideal score for n competitors. Counts of the form 6k+4 never do.
func HasIdeal(n int) bool {
	return (n-4)%6 != 0
}

// IdealAvailable is HasIdeal for a field that may still need a bye.
func IdealAvailable(n int) bool {
	return HasIdeal(n + n%2)
}

// GenerateIdeal builds Berger tables rearranged with DiagR2L2R, which puts
// every competitor on every board as evenly as possible. It fails with
// ErrIdealUnavailable for fields where that arrangement does not exist.
func GenerateIdeal(competitors []Competitor) (Schedule, error) {
	n := len(competitors)
	if n == 0 {
		return nil, ErrNoCompetitors
	}
	if !IdealAvailable(n) {
		var alts []string
		for _, alt := range []int{n - 2, n - 1, n + 1, n + 2} {
			if alt > 0 && IdealAvailable(alt) {
				alts = append(alts, fmt.Sprintf("%d", alt))
			}
		}
		return nil, fmt.Errorf("%w for %d competitors; available for: .. %v ..",
			ErrIdealUnavailable, n, strings.Join(alts, ", "))
	}

	s, err := Generate(competitors, Berger)
	if err != nil {
		return nil, err
	}

	return Equalize(s, DiagR2L2R, 0, nil)
}
