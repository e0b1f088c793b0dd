/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

// Section is one independently paired group of entries.
type Section struct {
	Name    string
	Entries []Entry
}

// DisplayName is the section name, or "UNNAMED" for events without named
// sections.
func (s Section) DisplayName() string {
	if s.Name == "" {
		return "UNNAMED"
	}
	return s.Name
}

// Competitors returns one competitor per entry in registration order.
// Entrants sharing a name are told apart by USCF id, or failing that by a
// running number.
func (s Section) Competitors() []roundrobin.Competitor {
	counts := make(map[string]int, len(s.Entries))
	for _, e := range s.Entries {
		counts[e.DisplayName()]++
	}

	ret := make([]roundrobin.Competitor, 0, len(s.Entries))
	// names carried by a single entrant are never generated
	used := make(map[string]bool, len(s.Entries))
	for name, n := range counts {
		if n == 1 {
			used[name] = true
		}
	}
	for _, e := range s.Entries {
		name := e.DisplayName()
		if counts[name] > 1 {
			if e.UscfID != 0 {
				name = fmt.Sprintf("%v (%v)", name, e.UscfID)
			}
			base := name
			for n := 2; used[name]; n++ {
				name = fmt.Sprintf("%v #%d", base, n)
			}
			used[name] = true
		}
		ret = append(ret, roundrobin.Competitor{Name: name})
	}

	return ret
}

// GroupBySection splits entries into sections ordered by SectionSorter.
// Within a section entries are ordered by registration date when every entry
// carries one, and keep their listed order otherwise.
func GroupBySection(entries []Entry) []Section {
	bySection := make(map[string][]Entry)
	for _, e := range entries {
		bySection[e.SectionName] = append(bySection[e.SectionName], e)
	}

	var sectionNames []string
	for sec := range bySection {
		sectionNames = append(sectionNames, sec)
	}
	sort.Sort(SectionSorter(sectionNames))

	ret := make([]Section, 0, len(sectionNames))
	for _, name := range sectionNames {
		list := bySection[name]
		if allDated(list) {
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].RegistrationDate.Before(list[j].RegistrationDate)
			})
		}
		ret = append(ret, Section{Name: name, Entries: list})
	}

	return ret
}

func allDated(entries []Entry) bool {
	for _, e := range entries {
		if e.RegistrationDate.IsZero() {
			return false
		}
	}
	return true
}

// SectionSorter implements sort.Interface for custom section ordering
// Order: "Open" first, then "Championship", then U<Number> sections
// descending by number, then others lexicographically
type SectionSorter []string

func (s SectionSorter) Len() int { return len(s) }

func (s SectionSorter) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

func (s SectionSorter) Less(i, j int) bool {
	a, b := s[i], s[j]
	if a == "Open" && b != "Open" {
		return true
	}
	if b == "Open" && a != "Open" {
		return false
	}
	if a == "Championship" && b != "Championship" {
		return true
	}
	if b == "Championship" && a != "Championship" {
		return false
	}
	ua, ub := strings.HasPrefix(a, "U"), strings.HasPrefix(b, "U")
	// Both U-sections: compare numeric suffix descending
	if ua && ub {
		ai, errA := strconv.Atoi(strings.TrimPrefix(a, "U"))
		bi, errB := strconv.Atoi(strings.TrimPrefix(b, "U"))
		if errA == nil && errB == nil {
			return ai > bi
		}
	}
	// U-sections before non-U (after Championship)
	if ua != ub {
		return ua
	}
	return a < b
}
