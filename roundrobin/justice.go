/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"fmt"
)

// targetPerSlot is how often every competitor would ideally sit at each
// board over the whole schedule.
const targetPerSlot = 2

// OccurrenceTable counts, per competitor, how many games were played on
// each board. Boards are numbered from 1.
type OccurrenceTable map[Competitor]map[int]int

// Count returns how many times c played on board slot.
func (t OccurrenceTable) Count(c Competitor, slot int) int {
	return t[c][slot]
}

// Justice is the fairness evaluation of one schedule.
type Justice struct {
	// PerCompetitor holds each competitor's summed board penalty.
	PerCompetitor map[Competitor]int
	// Total is the sum of PerCompetitor; lower is fairer.
	Total int
	// Occurrences is the per-competitor per-board game count.
	Occurrences OccurrenceTable
	// PlaysFirst counts games in which a competitor was named first.
	PlaysFirst map[Competitor]int
	// Slots is the board count derived from the competitor count.
	Slots int
}

// IdealScore is the lowest total achievable in general: one unit of
// unavoidable imbalance per competitor.
func IdealScore(competitorCount int) int {
	return competitorCount
}

// slotPenalty penalizes excess one unit harder than shortfall.
func slotPenalty(count int) int {
	switch {
	case count == targetPerSlot:
		return 0
	case count < targetPerSlot:
		return targetPerSlot - count
	default:
		return count - targetPerSlot + 1
	}
}

// Score evaluates how evenly competitors are spread across boards.
// competitors must be the (bye padded) field the schedule was built from.
func Score(s Schedule, competitors []Competitor) (Justice, error) {
	if len(competitors) == 0 {
		return Justice{}, ErrNoCompetitors
	}
	slots := len(competitors) / 2

	observed := make(map[int]bool)
	occ := make(OccurrenceTable, len(competitors))
	first := make(map[Competitor]int, len(competitors))
	for _, c := range competitors {
		occ[c] = make(map[int]int, slots)
		first[c] = 0
	}
	for _, rd := range s {
		for i, p := range rd {
			slot := i + 1
			observed[slot] = true
			for _, c := range p {
				if occ[c] == nil {
					occ[c] = make(map[int]int, slots)
				}
				occ[c][slot]++
			}
			first[p[0]]++
		}
	}
	if len(observed) != slots {
		return Justice{}, fmt.Errorf("%w: %v competitors need %v boards, schedule uses %v",
			ErrShapeMismatch, len(competitors), slots, len(observed))
	}

	ret := Justice{
		PerCompetitor: make(map[Competitor]int, len(competitors)),
		Occurrences:   occ,
		PlaysFirst:    first,
		Slots:         slots,
	}
	for _, c := range competitors {
		if _, ok := ret.PerCompetitor[c]; ok {
			continue
		}
		score := 0
		for slot := 1; slot <= slots; slot++ {
			score += slotPenalty(occ[c][slot])
		}
		ret.PerCompetitor[c] = score
		ret.Total += score
	}

	return ret, nil
}
