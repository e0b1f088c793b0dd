/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
)

// vended by https://beta.boylstonchess.org/api/event/<eventId>
// EventDetail represents detailed information about a specific event.
type EventDetail struct {
	EventID             int       `json:"eventId"`
	Title               string    `json:"title"`
	StartDate           time.Time `json:"startDate"`
	EndDate             time.Time `json:"endDate"`
	Dates               []string  `json:"dates"`
	DateDisplay         string    `json:"dateDisplay"`
	Description         string    `json:"description"`
	DescriptionHTML     string    `json:"descriptionHtml"`
	Sections            []string  `json:"sections"`
	SectionDisplay      string    `json:"sectionDisplay"`
	IsRegistrationOpen  bool      `json:"isRegistrationOpen"`
	RegistrationEndDate time.Time `json:"registrationEndDate"`
	EntryFeeSummary     string    `json:"entryFeeSummary"`
	PrizeSummary        string    `json:"prizeSummary"`
	EventFormat         string    `json:"eventFormat"`
	TimeControl         string    `json:"timeControl"`
	RegistrationTime    string    `json:"registrationTime"`
	RoundTimes          string    `json:"roundTimes"`
	CreationDate        time.Time `json:"creationDate"`
	LastChangeDate      time.Time `json:"lastChangeDate"`
	NumEntries          int       `json:"numEntries"`
	Entries             []Entry   `json:"entries"`
}

// Entry represents a single registration entry for an event.
type Entry struct {
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	UscfID              int       `json:"uscfId"`
	ChessTitle          string    `json:"chessTitle"`
	WomensChessTitle    string    `json:"womensChessTitle"`
	UscfPeakRating      int       `json:"uscfPeakRating"`
	SectionName         string    `json:"sectionName"`
	RegistrationDate    time.Time `json:"registrationDate"`
	ByeRequests         string    `json:"byeRequests"`
	PrimaryRating       string    `json:"primaryRating"`
	PrimaryRatingType   string    `json:"primaryRatingType"`
	PrimaryRatingDate   string    `json:"primaryRatingDate"`
	SecondaryRating     string    `json:"secondaryRating"`
	SecondaryRatingType string    `json:"secondaryRatingType"`
	SecondaryRatingDate string    `json:"secondaryRatingDate"`
}

// GetEventDetail fetches detailed event info, including registered entries,
// for a given eventId.
func (client *Client) GetEventDetail(ctx context.Context,
	eventId int64) (EventDetail, error) {

	var detail EventDetail
	url := fmt.Sprintf("%v/event/%d", client.apiBase, eventId)
	if err := client.getJSON(ctx, url, &detail); err != nil {
		return EventDetail{}, fmt.Errorf("unable to fetch bcc event detail %d: %w",
			eventId, err)
	}

	return detail, nil
}

// Custom unmarshaller for EventDetail to handle flexible date parsing.
func (ed *EventDetail) UnmarshalJSON(data []byte) error {
	type Alias EventDetail
	aux := &struct {
		StartDate           string  `json:"startDate"`
		EndDate             string  `json:"endDate"`
		RegistrationEndDate string  `json:"registrationEndDate"`
		CreationDate        string  `json:"creationDate"`
		LastChangeDate      string  `json:"lastChangeDate"`
		Entries             []Entry `json:"entries"`
		*Alias
	}{
		Alias: (*Alias)(ed),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("EventDetail unmarshal: %w", err)
	}
	var err error
	ed.StartDate, err = internal.ParseDateOrZero(aux.StartDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.StartDate: %w", err)
	}
	ed.EndDate, err = internal.ParseDateOrZero(aux.EndDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.EndDate: %w", err)
	}
	ed.RegistrationEndDate, err = internal.ParseDateOrZero(aux.RegistrationEndDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.RegistrationEndDate: %w", err)
	}
	ed.CreationDate, err = internal.ParseDateOrZero(aux.CreationDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.CreationDate: %w", err)
	}
	ed.LastChangeDate, err = internal.ParseDateOrZero(aux.LastChangeDate)
	if err != nil {
		return fmt.Errorf("parsing EventDetail.LastChangeDate: %w", err)
	}
	// copy parsed entries
	ed.Entries = aux.Entries
	return nil
}

// Custom unmarshaller for Entry to handle flexible date parsing.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type Alias Entry
	aux := &struct {
		RegistrationDate string `json:"registrationDate"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("Entry unmarshal: %w", err)
	}
	var err error
	e.RegistrationDate, err = internal.ParseDateOrZero(aux.RegistrationDate)
	if err != nil {
		return fmt.Errorf("parsing Entry.RegistrationDate: %w", err)
	}
	return nil
}

// BuildEventOutput formats an EventDetail into a pretty printed string
// output. boldTag wraps field names, e.g. "**" for Discord markdown.
func BuildEventOutput(detail *EventDetail, boldTag string, includeTitle,
	includeUrl bool) string {

	var sb strings.Builder

	field := func(name, value string) {
		sb.WriteString(fmt.Sprintf("%v%v%v: %v\n", boldTag, name, boldTag, value))
	}
	optField := func(name, value string) {
		if value != "" {
			field(name, value)
		}
	}

	if includeTitle {
		field("Title", detail.Title)
	}
	if includeUrl {
		field("URL", fmt.Sprintf("%v/events/%d", DefaultWebBase, detail.EventID))
	}
	field("EventID", fmt.Sprintf("%d", detail.EventID))
	field("Date", detail.DateDisplay)
	optField("Format", detail.EventFormat)
	optField("Time Control", detail.TimeControl)
	optField("Sections", detail.SectionDisplay)
	optField("Entry Fee", detail.EntryFeeSummary)
	optField("Round Times", detail.RoundTimes)
	field("Entries", buildEntriesString(detail))

	return sb.String()
}

// buildEntriesString summarizes the entry count, per section when the event
// has more than one.
func buildEntriesString(detail *EventDetail) string {
	var sb strings.Builder

	sections := GroupBySection(detail.Entries)
	sb.WriteString(fmt.Sprintf("%v", len(detail.Entries)))
	if len(sections) > 1 || len(detail.Sections) > 1 {
		sb.WriteString(" (")
		for i, sec := range sections {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%v:%v", sec.DisplayName(), len(sec.Entries)))
		}
		sb.WriteString(")")
	}

	return sb.String()
}
