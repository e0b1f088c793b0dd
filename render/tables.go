/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

// DefaultHighlight is applied to highlighted competitors when Options.Style
// is left unset.
var DefaultHighlight = lipgloss.NewStyle().Bold(true).
	Foreground(lipgloss.Color("9"))

// Options controls how a schedule is laid out.
type Options struct {
	// Width right-aligns every name and round number; 0 or 1 means no
	// padding.
	Width int
	// Header adds a board number row and dash rules around the rounds.
	Header bool
	// Highlight lists competitors rendered with Style.
	Highlight []roundrobin.Competitor
	// Style overrides DefaultHighlight.
	Style *lipgloss.Style
}

func (o Options) width() int {
	if o.Width < 1 {
		return 1
	}
	return o.Width
}

func (o Options) highlighter() func(roundrobin.Competitor, string) string {
	if len(o.Highlight) == 0 {
		return func(_ roundrobin.Competitor, s string) string { return s }
	}
	style := DefaultHighlight
	if o.Style != nil {
		style = *o.Style
	}
	marked := make(map[roundrobin.Competitor]bool, len(o.Highlight))
	for _, c := range o.Highlight {
		marked[c] = true
	}

	return func(c roundrobin.Competitor, s string) string {
		if !marked[c] {
			return s
		}
		return style.Render(s)
	}
}

// Lines lays out s as "Round <n>: <a>-<b> <c>-<d> ..." lines. Pair order
// is never changed.
func Lines(s roundrobin.Schedule, opts Options) []string {
	w := opts.width()
	hl := opts.highlighter()
	sep := strings.Repeat(" ", w)

	cell := func(c roundrobin.Competitor) string {
		name := c.String()
		pad := ""
		if nw := lipgloss.Width(name); nw < w {
			pad = strings.Repeat(" ", w-nw)
		}
		return pad + hl(c, name)
	}

	var ret []string
	var rule string
	if opts.Header {
		slots := s.SlotCount()
		cols := make([]string, 0, slots)
		for b := 1; b <= slots; b++ {
			cols = append(cols, fmt.Sprintf("%*d", 2*w+1, b))
		}
		head := fmt.Sprintf("%-*s", w+8, "Round") + strings.Join(cols, sep)
		rule = strings.Repeat("-", len(head))
		ret = append(ret, head, rule)
	}

	for r, rd := range s {
		pairs := make([]string, 0, len(rd))
		for _, p := range rd {
			pairs = append(pairs, cell(p[0])+"-"+cell(p[1]))
		}
		ret = append(ret, fmt.Sprintf("Round %*d: %s", w, r+1,
			strings.Join(pairs, sep)))
	}
	if opts.Header {
		ret = append(ret, rule)
	}

	return ret
}

// NameWidth is the widest display name in competitors, in terminal cells,
// and at least 1.
func NameWidth(competitors []roundrobin.Competitor) int {
	w := 1
	for _, c := range competitors {
		w = max(w, lipgloss.Width(c.String()))
	}
	return w
}

// Schedule joins Lines with newlines.
func Schedule(s roundrobin.Schedule, opts Options) string {
	return strings.Join(Lines(s, opts), "\n") + "\n"
}

// Occurrences tabulates how often each competitor played on each board,
// followed by the competitor's penalty and how often they were named
// first.
func Occurrences(j roundrobin.Justice,
	competitors []roundrobin.Competitor) string {

	maxName := max(len("Competitor"), NameWidth(competitors))
	colW := len(fmt.Sprintf("%d", j.Slots))
	if colW < 2 {
		colW = 2
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-*s", maxName, "Competitor"))
	for b := 1; b <= j.Slots; b++ {
		sb.WriteString(fmt.Sprintf(" %*d", colW, b))
	}
	sb.WriteString("  Score  First\n")
	for _, c := range competitors {
		name := c.String()
		sb.WriteString(name + strings.Repeat(" ", maxName-lipgloss.Width(name)))
		for b := 1; b <= j.Slots; b++ {
			sb.WriteString(fmt.Sprintf(" %*d", colW, j.Occurrences.Count(c, b)))
		}
		sb.WriteString(fmt.Sprintf("  %5d  %5d\n", j.PerCompetitor[c],
			j.PlaysFirst[c]))
	}
	sb.WriteString(fmt.Sprintf("Total score: %d\n", j.Total))

	return sb.String()
}

// Summary describes the outcome of a search in one line.
func Summary(b roundrobin.BestResult) string {
	var verdict string
	switch {
	case b.IsIdeal():
		verdict = "ideal"
	case b.Improved():
		verdict = "best found, not ideal"
	default:
		verdict = "no improvement found"
	}

	return fmt.Sprintf("score %d -> %d via %v (offset %d); ideal score %d; %v\n",
		b.BaselineScore, b.Best.Score, b.Best.Strategy, b.Best.Offset,
		b.IdealScore, verdict)
}

// SortedByName returns competitors ordered by display name, byes last.
func SortedByName(competitors []roundrobin.Competitor) []roundrobin.Competitor {
	ret := append([]roundrobin.Competitor(nil), competitors...)
	sort.SliceStable(ret, func(i, j int) bool {
		if ret[i].IsBye() != ret[j].IsBye() {
			return !ret[i].IsBye()
		}
		return ret[i].String() < ret[j].String()
	})

	return ret
}
