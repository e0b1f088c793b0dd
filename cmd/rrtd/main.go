/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikeb26/boylstonchessclub-roundrobin/bcc"
	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
	"github.com/mikeb26/boylstonchessclub-roundrobin/render"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

//go:embed help.txt
var helpText string

// cmdHandler defines the signature for command handler functions.
type cmdHandler func(ctx context.Context, args []string, w io.Writer) error

// commands maps command names to their respective handler functions.
var commands = map[string]cmdHandler{
	"help":     handleHelp,
	"tables":   handleTables,
	"score":    handleScore,
	"equalize": handleEqualize,
	"search":   handleSearch,
	"ideal":    handleIdeal,
	"cal":      handleCal,
	"event":    handleEvent,
	"config":   handleConfig,
}

// newClient is replaced in tests to point at a local server.
var newClient = bcc.NewClient

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stdout)
		os.Exit(1)
	}
	cmd := os.Args[1]
	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		usage(os.Stdout)
		os.Exit(1)
	}
	if err := handler(ctx, os.Args[2:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "%v %v: %v\n", os.Args[0], cmd, err)
		}
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%v", helpText)
}

func handleHelp(ctx context.Context, args []string, w io.Writer) error {
	usage(w)
	return nil
}

// fieldFlags are the flags shared by every command that builds tables from
// the command line.
type fieldFlags struct {
	players   *int
	names     *string
	method    *string
	width     *int
	header    *bool
	highlight *string
	occur     *bool
}

func addFieldFlags(fs *flag.FlagSet) *fieldFlags {
	return &fieldFlags{
		players: fs.Int("players", 0, "Number of competitors, named 1..N"),
		names: fs.String("names", "",
			"Comma separated competitor names (overrides --players)"),
		method: fs.String("method", "berger", "Pairing method: berger or circle"),
		width: fs.Int("width", 0,
			"Column width for names (0 fits the longest name)"),
		header:    fs.Bool("header", false, "Print a board header row"),
		highlight: fs.String("highlight", "", "Comma separated names to highlight"),
		occur: fs.Bool("occurrences", false,
			"Also print how often each competitor plays on each board"),
	}
}

func splitList(s string) []string {
	var ret []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

// tableRun converts the parsed flags into a plain run.
func (f *fieldFlags) tableRun() (tableRun, error) {
	var competitors []roundrobin.Competitor
	if *f.names != "" {
		competitors = roundrobin.NewCompetitors(splitList(*f.names)...)
	} else if *f.players > 0 {
		competitors = roundrobin.NumberedCompetitors(*f.players)
	} else {
		return tableRun{}, fmt.Errorf("please provide --players N or --names a,b,...")
	}
	if *f.width < 0 {
		return tableRun{}, fmt.Errorf("--width must be non-negative")
	}
	method, err := roundrobin.ParseMethod(*f.method)
	if err != nil {
		return tableRun{}, err
	}

	return tableRun{
		competitors: competitors,
		method:      method,
		mode:        internal.ModePlain,
		occurrences: *f.occur,
		render: render.Options{
			Width:     *f.width,
			Header:    *f.header,
			Highlight: roundrobin.NewCompetitors(splitList(*f.highlight)...),
		},
	}, nil
}

func parseSeed(seed int64) *uint64 {
	if seed < 0 {
		return nil
	}
	s := uint64(seed)
	return &s
}

func handleTables(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("tables", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	ideal := fs.Bool("ideal", false,
		"Rearrange boards so everyone plays every board as evenly as possible")
	from := fs.Int("from", 0, "Print tables for every field size from --from")
	to := fs.Int("to", 0, "... up to and including --to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *from > 0 || *to > 0 {
		return printTableRange(w, ff, *from, *to, *ideal)
	}

	run, err := ff.tableRun()
	if err != nil {
		return err
	}
	if *ideal {
		run.mode = internal.ModeIdeal
	}
	return run.execute(w)
}

// printTableRange prints tables for every field size in [from, to]. Sizes
// without an ideal layout are reported and skipped.
func printTableRange(w io.Writer, ff *fieldFlags, from, to int,
	ideal bool) error {

	if from < 1 || to < from {
		return fmt.Errorf("invalid range --from %d --to %d", from, to)
	}
	for n := from; n <= to; n++ {
		*ff.players = n
		*ff.names = ""
		run, err := ff.tableRun()
		if err != nil {
			return err
		}
		if ideal {
			run.mode = internal.ModeIdeal
		}

		fmt.Fprintf(w, "%d players\n", n)
		if err := run.execute(w); err != nil {
			if !errors.Is(err, roundrobin.ErrIdealUnavailable) {
				return err
			}
			fmt.Fprintf(w, "%v\n", err)
		}
		if n < to {
			fmt.Fprintf(w, "\n")
		}
	}

	return nil
}

func handleScore(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	strategy := fs.String("strategy", "",
		"Rearrange boards with this strategy before scoring")
	offset := fs.Int("offset", 0, "Board offset for --strategy")
	if err := fs.Parse(args); err != nil {
		return err
	}

	run, err := ff.tableRun()
	if err != nil {
		return err
	}
	run.occurrences = true
	if *strategy != "" {
		run.mode = internal.ModeEqualize
		run.offset = *offset
		if run.strategy, err = roundrobin.ParseStrategy(*strategy); err != nil {
			return err
		}
	}
	return run.execute(w)
}

func handleEqualize(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("equalize", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	strategy := fs.String("strategy", roundrobin.DiagR2L2R.String(),
		"Board rearrangement strategy")
	offset := fs.Int("offset", 0, "Board offset added to every swap target")
	seed := fs.Int64("seed", -1, "Seed for BRUTE_FORCE (negative is random)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	run, err := ff.tableRun()
	if err != nil {
		return err
	}
	run.mode = internal.ModeEqualize
	run.offset = *offset
	run.seed = parseSeed(*seed)
	if run.strategy, err = roundrobin.ParseStrategy(*strategy); err != nil {
		return err
	}
	return run.execute(w)
}

func handleSearch(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	budget := fs.Int("budget", 0,
		"Random trials per board once deterministic strategies are exhausted")
	seed := fs.Int64("seed", -1, "Seed for random trials (negative is random)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *budget < 0 {
		return fmt.Errorf("--budget must be non-negative")
	}

	run, err := ff.tableRun()
	if err != nil {
		return err
	}
	run.mode = internal.ModeSearch
	run.budget = *budget
	run.seed = parseSeed(*seed)
	return run.execute(w)
}

func handleIdeal(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("ideal", flag.ContinueOnError)
	ff := addFieldFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	run, err := ff.tableRun()
	if err != nil {
		return err
	}
	run.mode = internal.ModeIdeal
	return run.execute(w)
}

func handleCal(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("cal", flag.ContinueOnError)
	days := fs.Int("days", 14, "Number of days to retrieve (1-60)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// enforce bounds
	if *days < 1 {
		*days = 1
	} else if *days > 60 {
		*days = 60
	}

	events, err := newClient(ctx).GetEvents(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	events = bcc.EventsBetween(events, now, now.AddDate(0, 0, *days))
	if len(events) == 0 {
		fmt.Fprintf(w, "No events found in the next %d days.\n", *days)
		return nil
	}

	lastDate := ""
	for _, ev := range events {
		if d := ev.Date.Format("2006-01-02"); d != lastDate {
			fmt.Fprintln(w, d)
			lastDate = d
		}
		fmt.Fprintf(w, "  - %s (EventID:%d)\n", ev.Title, ev.EventID)
	}
	fmt.Fprintf(w, "\nRun '%s event --eventid <EventID>' to pair a specific event\n",
		os.Args[0])

	return nil
}

func handleEvent(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("event", flag.ContinueOnError)
	eventID := fs.Int("eventid", 0, "Event ID to pair")
	method := fs.String("method", "berger", "Pairing method: berger or circle")
	search := fs.Bool("search", true, "Search for the fairest board arrangement")
	budget := fs.Int("budget", 0, "Random trials per board during search")
	seed := fs.Int64("seed", -1, "Seed for random trials (negative is random)")
	width := fs.Int("width", 0, "Column width for names (0 fits the longest name)")
	header := fs.Bool("header", true, "Print a board header row")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *eventID <= 0 {
		fs.Usage()
		return fmt.Errorf("please provide a valid --eventid ID")
	}
	m, err := roundrobin.ParseMethod(*method)
	if err != nil {
		return err
	}

	detail, tables, err := newClient(ctx).GetEventTables(ctx, int64(*eventID),
		bcc.TableOptions{
			Method:           m,
			Search:           *search,
			BruteForceBudget: *budget,
			Seed:             parseSeed(*seed),
		})
	if err != nil {
		return err
	}

	ropts := render.Options{Width: *width, Header: *header}
	if ropts.Width == 0 {
		for _, t := range tables {
			ropts.Width = max(ropts.Width, render.NameWidth(t.Competitors))
		}
	}
	fmt.Fprint(w, bcc.BuildEventOutput(&detail, "", true, true))
	fmt.Fprint(w, "\n")
	fmt.Fprint(w, bcc.BuildTablesOutput(tables, ropts))

	return nil
}

func handleConfig(ctx context.Context, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	file := fs.String("file", "", "YAML tournament file")
	occur := fs.Bool("occurrences", false,
		"Also print how often each competitor plays on each board")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("please provide --file")
	}

	cfg, err := internal.LoadTournamentConfig(*file)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%v: %w", *file, err)
	}
	run, err := runFromConfig(cfg)
	if err != nil {
		return err
	}
	run.occurrences = *occur

	if cfg.Name != "" {
		fmt.Fprintf(w, "%v\n", cfg.Name)
	}
	return run.execute(w)
}
