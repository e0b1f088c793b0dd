/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
)

// vended by https://beta.boylstonchess.org/api/events
// Event represents a summary of an event in the Boylston Chess API
type Event struct {
	EventID     int       `json:"eventId"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	DayOfWeek   string    `json:"dayOfWeek"`
	DateDisplay string    `json:"dateDisplay"`
}

// GetEvents fetches the club calendar.
func (client *Client) GetEvents(ctx context.Context) ([]Event, error) {
	var events []Event
	if err := client.getJSON(ctx, client.apiBase+"/events", &events); err != nil {
		return nil, fmt.Errorf("unable to fetch bcc events: %w", err)
	}

	return events, nil
}

// EventsBetween returns the events dated within [start, end], earliest first.
func EventsBetween(events []Event, start, end time.Time) []Event {
	var ret []Event
	for _, ev := range events {
		if ev.Date.Before(start) || ev.Date.After(end) {
			continue
		}
		ret = append(ret, ev)
	}
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].Date.Before(ret[j].Date)
	})

	return ret
}

// Custom unmarshaller to handle non-RFC3339 timestamps, "null", and empty strings.
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		Date      string `json:"date"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Event unmarshal: %w", err)
	}
	var err error
	e.Date, err = internal.ParseDateOrZero(aux.Date)
	if err != nil {
		return fmt.Errorf("parsing Event.Date: %w", err)
	}
	e.StartDate, err = internal.ParseDateOrZero(aux.StartDate)
	if err != nil {
		return fmt.Errorf("parsing Event.StartDate: %w", err)
	}
	e.EndDate, err = internal.ParseDateOrZero(aux.EndDate)
	if err != nil {
		return fmt.Errorf("parsing Event.EndDate: %w", err)
	}
	return nil
}
