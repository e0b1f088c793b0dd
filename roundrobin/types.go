/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
	"strings"
)

// Competitor identifies one participant. Two competitors are the same seat
// iff they compare equal.
type Competitor struct {
	Name string

	bye bool
}

// Bye is the placeholder opponent injected when the competitor count is odd.
// It cannot collide with a real competitor, even one named "BYE".
var Bye = Competitor{bye: true}

const byeLabel = "BYE"

// NewCompetitors builds competitors from their display names, preserving
// order.
func NewCompetitors(names ...string) []Competitor {
	ret := make([]Competitor, 0, len(names))
	for _, n := range names {
		ret = append(ret, Competitor{Name: n})
	}

	return ret
}

// NumberedCompetitors returns competitors named "1".."n".
func NumberedCompetitors(n int) []Competitor {
	ret := make([]Competitor, 0, n)
	for i := 1; i <= n; i++ {
		ret = append(ret, Competitor{Name: fmt.Sprintf("%d", i)})
	}

	return ret
}

func (c Competitor) IsBye() bool {
	return c.bye
}

func (c Competitor) String() string {
	if c.bye {
		return byeLabel
	}
	return c.Name
}

// Pair is a single game. The first member is the first-named (home/white)
// competitor.
type Pair [2]Competitor

func (p Pair) String() string {
	return p[0].String() + "-" + p[1].String()
}

// Round holds one pair per slot; index 0 is board 1.
type Round []Pair

// Schedule is the ordered list of rounds of a round-robin.
type Schedule []Round

// Clone returns a deep copy so callers may reorder slots without touching
// the receiver.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	ret := make(Schedule, len(s))
	for i, rd := range s {
		ret[i] = append(Round(nil), rd...)
	}

	return ret
}

// SlotCount is the number of boards used by the widest round.
func (s Schedule) SlotCount() int {
	max := 0
	for _, rd := range s {
		if len(rd) > max {
			max = len(rd)
		}
	}

	return max
}

// Competitors lists every competitor appearing in the schedule in
// first-seen order.
func (s Schedule) Competitors() []Competitor {
	seen := make(map[Competitor]bool)
	var ret []Competitor
	for _, rd := range s {
		for _, p := range rd {
			for _, c := range p {
				if !seen[c] {
					seen[c] = true
					ret = append(ret, c)
				}
			}
		}
	}

	return ret
}

// Equal reports whether both schedules hold the same pairs in the same
// order.
func (s Schedule) Equal(other Schedule) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}

	return true
}

func (s Schedule) String() string {
	var sb strings.Builder
	for i, rd := range s {
		sb.WriteString(fmt.Sprintf("Round %d:", i+1))
		for _, p := range rd {
			sb.WriteString(" ")
			sb.WriteString(p.String())
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Pad returns a copy of competitors with Bye appended when the count is odd.
func Pad(competitors []Competitor) []Competitor {
	ret := append([]Competitor(nil), competitors...)
	if len(ret)%2 == 1 {
		ret = append(ret, Bye)
	}

	return ret
}
