/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
	"strings"
)

// Method selects the pairing table construction.
type Method int

const (
	Circle Method = iota
	Berger
)

func (m Method) String() string {
	switch m {
	case Circle:
		return "circle"
	case Berger:
		return "berger"
	default:
		return "?"
	}
}

// ParseMethod maps "circle" or "berger" (any case) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return Circle, nil
	case "berger":
		return Berger, nil
	}

	return Circle, fmt.Errorf("%w %q; valid: circle, berger", ErrUnknownMethod, s)
}

// Generate builds a complete round-robin for competitors. Order of the
// input defines seat numbers. An odd count is padded with Bye. The input
// slice is never modified.
func Generate(competitors []Competitor, method Method) (Schedule, error) {
	if len(competitors) == 0 {
		return nil, ErrNoCompetitors
	}
	players := Pad(competitors)

	switch method {
	case Circle:
		return circleTables(players), nil
	case Berger:
		return bergerTables(players), nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, int(method))
}

// circleTables seats the first half facing the reversed second half and
// rotates everyone except seat 0 after each round.
func circleTables(players []Competitor) Schedule {
	n := len(players)
	half := n / 2

	up := append([]Competitor(nil), players[:half]...)
	down := make([]Competitor, 0, half)
	for i := n - 1; i >= half; i-- {
		down = append(down, players[i])
	}

	schedule := make(Schedule, 0, n-1)
	for r := 0; r < n-1; r++ {
		rd := make(Round, 0, half)
		for i := 0; i < half; i++ {
			rd = append(rd, Pair{up[i], down[i]})
		}
		schedule = append(schedule, rd)

		lastUp := up[len(up)-1]
		up = up[:len(up)-1]
		firstDown := down[0]
		down = down[1:]

		pos := 1
		if pos > len(up) {
			pos = len(up)
		}
		up = append(up[:pos], append([]Competitor{firstDown}, up[pos:]...)...)
		down = append(down, lastUp)
	}

	return schedule
}

// bergerTables fixes the last competitor and turns the remaining ones on a
// wheel, matching the FIDE Berger tables.
func bergerTables(players []Competitor) Schedule {
	n := len(players)
	half := n / 2

	fixed := players[n-1]
	wheel := make([]Competitor, 0, n-1)
	for i := n - 2; i >= 0; i-- {
		wheel = append(wheel, players[i])
	}

	schedule := make(Schedule, 0, n-1)
	for r := 0; r < n-1; r++ {
		rd := make(Round, 0, half)
		last := wheel[len(wheel)-1]
		if r%2 == 0 {
			rd = append(rd, Pair{last, fixed})
		} else {
			rd = append(rd, Pair{fixed, last})
		}
		for i := 0; i < half-1; i++ {
			rd = append(rd, Pair{wheel[len(wheel)-(i+2)], wheel[i]})
		}
		schedule = append(schedule, rd)

		shift := half - 1
		wheel = append(append([]Competitor(nil), wheel[shift:]...),
			wheel[:shift]...)
	}

	return schedule
}
