/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
	"github.com/mikeb26/boylstonchessclub-roundrobin/render"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

// tableRun is one request to build, rearrange and print a round-robin.
type tableRun struct {
	competitors []roundrobin.Competitor
	method      roundrobin.Method
	mode        internal.Mode
	strategy    roundrobin.Strategy
	offset      int
	budget      int
	seed        *uint64
	render      render.Options
	occurrences bool
}

func (run tableRun) rng() *rand.Rand {
	if run.seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*run.seed, 0))
}

// execute builds the tables for run and writes them to w.
func (run tableRun) execute(w io.Writer) error {
	field := roundrobin.Pad(run.competitors)

	var s roundrobin.Schedule
	var summary string
	switch run.mode {
	case internal.ModeIdeal:
		var err error
		s, err = roundrobin.GenerateIdeal(run.competitors)
		if err != nil {
			return err
		}
	default:
		var err error
		s, err = roundrobin.Generate(run.competitors, run.method)
		if err != nil {
			return err
		}
	}

	switch run.mode {
	case internal.ModeEqualize:
		cand, before, err := roundrobin.EqualizeScored(s, field, run.strategy,
			run.offset, run.rng())
		if err != nil {
			return err
		}
		s = cand.Schedule()
		summary = fmt.Sprintf("score %d -> %d via %v (offset %d); ideal score %d\n",
			before, cand.Score, cand.Strategy, cand.Offset,
			roundrobin.IdealScore(len(field)))
	case internal.ModeSearch:
		best, err := roundrobin.Search(s, field, roundrobin.SearchOptions{
			BruteForceBudget: run.budget,
			Rand:             run.rng(),
		})
		if err != nil {
			return err
		}
		s = best.Best.Schedule()
		summary = render.Summary(best)
	}

	j, err := roundrobin.Score(s, field)
	if err != nil {
		return err
	}
	if summary == "" {
		summary = fmt.Sprintf("score %d; ideal score %d\n", j.Total,
			roundrobin.IdealScore(len(field)))
	}

	ropts := run.render
	if ropts.Width == 0 {
		ropts.Width = render.NameWidth(field)
	}
	fmt.Fprint(w, render.Schedule(s, ropts))
	fmt.Fprint(w, summary)
	if run.occurrences {
		fmt.Fprint(w, "\n")
		fmt.Fprint(w, render.Occurrences(j, field))
	}

	return nil
}

// runFromConfig converts a validated tournament file into a tableRun.
func runFromConfig(cfg *internal.TournamentConfig) (tableRun, error) {
	method, err := cfg.PairingMethod()
	if err != nil {
		return tableRun{}, err
	}
	run := tableRun{
		competitors: cfg.Field(),
		method:      method,
		mode:        cfg.Mode,
		offset:      cfg.Offset,
		budget:      cfg.BruteForceBudget,
		seed:        cfg.Seed,
		render: render.Options{
			Width:     cfg.Width,
			Header:    cfg.Header,
			Highlight: cfg.Highlighted(),
		},
	}
	if cfg.Mode == internal.ModeEqualize {
		run.strategy, err = roundrobin.ParseStrategy(cfg.Strategy)
		if err != nil {
			return tableRun{}, err
		}
	}

	return run, nil
}
