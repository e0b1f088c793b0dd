/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package roundrobin

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoCompetitors        = errors.New("roundrobin: no competitors")
	ErrUnknownMethod        = errors.New("roundrobin: unknown generation method")
	ErrUnknownStrategy      = errors.New("roundrobin: unknown equalize strategy")
	ErrShapeMismatch        = errors.New("roundrobin: schedule shape does not match competitors")
	ErrCompetitorMismatch   = errors.New("roundrobin: competitors do not match schedule")
	ErrIdealUnavailable     = errors.New("roundrobin: ideal result not available")
	ErrInconsistentBaseline = errors.New("roundrobin: baseline score changed between evaluations")
)

// CompetitorMismatchError reports the symmetric difference between the
// competitors supplied by a caller and those found in a schedule.
type CompetitorMismatchError struct {
	// Missing were supplied but never appear in the schedule.
	Missing []Competitor
	// Extra appear in the schedule but were not supplied.
	Extra []Competitor
}

func (e *CompetitorMismatchError) Error() string {
	return fmt.Sprintf("%v: missing from schedule: [%v]; not supplied: [%v]",
		ErrCompetitorMismatch, joinCompetitors(e.Missing),
		joinCompetitors(e.Extra))
}

func (e *CompetitorMismatchError) Unwrap() error {
	return ErrCompetitorMismatch
}

func joinCompetitors(cs []Competitor) string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

// checkCompetitors verifies that the schedule is made of exactly the
// supplied competitors.
func checkCompetitors(s Schedule, competitors []Competitor) error {
	supplied := make(map[Competitor]bool, len(competitors))
	for _, c := range competitors {
		supplied[c] = true
	}
	found := s.Competitors()
	inSchedule := make(map[Competitor]bool, len(found))
	for _, c := range found {
		inSchedule[c] = true
	}

	mErr := &CompetitorMismatchError{}
	for _, c := range competitors {
		if !inSchedule[c] {
			mErr.Missing = append(mErr.Missing, c)
		}
	}
	for _, c := range found {
		if !supplied[c] {
			mErr.Extra = append(mErr.Extra, c)
		}
	}
	if len(mErr.Missing) > 0 || len(mErr.Extra) > 0 {
		return mErr
	}

	return nil
}
