/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-roundrobin/render"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

// TableOptions controls how section round-robins are built.
type TableOptions struct {
	Method roundrobin.Method
	// Search runs a solution search on every section and keeps the best
	// board arrangement found.
	Search           bool
	BruteForceBudget int
	// Seed makes random trials reproducible. Each section derives its own
	// stream from it.
	Seed *uint64
}

// SectionTables is the complete round-robin for one section.
type SectionTables struct {
	Section Section
	// Competitors is the section's field, padded with a bye when odd.
	Competitors []roundrobin.Competitor
	Schedule    roundrobin.Schedule
	Justice     roundrobin.Justice
	// Result is set when the schedule came from a search.
	Result *roundrobin.BestResult
}

// BuildSectionTables pairs every section as its own round-robin. Sections
// are built concurrently; the first failure cancels the rest.
func BuildSectionTables(ctx context.Context, sections []Section,
	opts TableOptions) ([]SectionTables, error) {

	ret := make([]SectionTables, len(sections))
	g, ctx := errgroup.WithContext(ctx)
	for i, sec := range sections {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := buildSectionTables(sec, opts, uint64(i))
			if err != nil {
				return fmt.Errorf("section %v: %w", sec.DisplayName(), err)
			}
			ret[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ret, nil
}

func buildSectionTables(sec Section, opts TableOptions,
	stream uint64) (SectionTables, error) {

	field := sec.Competitors()
	s, err := roundrobin.Generate(field, opts.Method)
	if err != nil {
		return SectionTables{}, err
	}
	ret := SectionTables{
		Section:     sec,
		Competitors: roundrobin.Pad(field),
		Schedule:    s,
	}

	if opts.Search {
		searchOpts := roundrobin.SearchOptions{
			BruteForceBudget: opts.BruteForceBudget,
		}
		if opts.Seed != nil {
			searchOpts.Rand = rand.New(rand.NewPCG(*opts.Seed, stream))
		}
		best, err := roundrobin.Search(s, ret.Competitors, searchOpts)
		if err != nil {
			return SectionTables{}, err
		}
		ret.Result = &best
		ret.Schedule = best.Best.Schedule()
	}

	ret.Justice, err = roundrobin.Score(ret.Schedule, ret.Competitors)
	if err != nil {
		return SectionTables{}, err
	}

	return ret, nil
}

// GetSectionTables fetches the entries for eventId and builds one
// round-robin per section.
func (client *Client) GetSectionTables(ctx context.Context, eventId int64,
	opts TableOptions) ([]SectionTables, error) {

	entries, _, err := client.GetEntries(ctx, eventId)
	if err != nil {
		return nil, err
	}

	return BuildSectionTables(ctx, GroupBySection(entries), opts)
}

// GetEventTables fetches eventId's detail and entries once and builds one
// round-robin per section. The detail is required; entries fall back to
// the website like GetEntries.
func (client *Client) GetEventTables(ctx context.Context, eventId int64,
	opts TableOptions) (EventDetail, []SectionTables, error) {

	f := client.fetchEvent(ctx, eventId)
	if f.apiErr != nil {
		return EventDetail{}, nil, f.apiErr
	}
	entries, _, err := f.entries()
	if err != nil {
		return EventDetail{}, nil, err
	}
	tables, err := BuildSectionTables(ctx, GroupBySection(entries), opts)
	if err != nil {
		return EventDetail{}, nil, err
	}

	return f.detail, tables, nil
}

// BuildTablesOutput formats section round-robins for display. Section
// headings are only printed when there is more than one section.
func BuildTablesOutput(tables []SectionTables, ropts render.Options) string {
	var sb strings.Builder

	for i, t := range tables {
		if i > 0 {
			sb.WriteString("\n")
		}
		if len(tables) > 1 {
			sb.WriteString(fmt.Sprintf("%v Section (%d players)\n",
				t.Section.DisplayName(), len(t.Section.Entries)))
		}
		sb.WriteString(render.Schedule(t.Schedule, ropts))
		if t.Result != nil {
			sb.WriteString(render.Summary(*t.Result))
		} else {
			sb.WriteString(fmt.Sprintf("score %d; ideal score %d\n",
				t.Justice.Total, roundrobin.IdealScore(len(t.Competitors))))
		}
	}

	return sb.String()
}
