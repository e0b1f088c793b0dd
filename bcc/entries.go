/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikeb26/boylstonchessclub-roundrobin/internal"
)

type Source int

const (
	SourceAPI Source = iota
	SourceWebsite
)

func (s Source) String() string {
	if s == SourceAPI {
		return "api"
	} else if s == SourceWebsite {
		return "website"
	} else {
		return "?"
	}
}

var ErrNoEntries = errors.New("no entries found")

// eventFetch holds the concurrent API and website answers for one event.
type eventFetch struct {
	eventId    int64
	detail     EventDetail
	apiErr     error
	webEntries []Entry
	webErr     error
}

// fetchEvent requests the event detail from the JSON API and the public
// entries page concurrently.
func (client *Client) fetchEvent(ctx context.Context, eventId int64) eventFetch {
	f := eventFetch{eventId: eventId}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.detail, f.apiErr = client.GetEventDetail(ctx, eventId)
	}()
	go func() {
		defer wg.Done()
		f.webEntries, f.webErr = client.getEntriesViaWeb(ctx, eventId)
	}()
	wg.Wait()

	return f
}

// entries picks the API entries whenever there are any, else the website's.
func (f eventFetch) entries() ([]Entry, Source, error) {
	if f.apiErr == nil && len(f.detail.Entries) > 0 {
		return f.detail.Entries, SourceAPI, nil
	}
	if f.webErr == nil && len(f.webEntries) > 0 {
		if f.apiErr != nil {
			log.Printf("bcc.entries: api failed for event %d: %v; using website",
				f.eventId, f.apiErr)
		}
		return f.webEntries, SourceWebsite, nil
	}
	if f.apiErr != nil {
		return nil, SourceAPI, f.apiErr
	}
	if f.webErr != nil {
		return nil, SourceWebsite, f.webErr
	}

	return nil, SourceAPI, fmt.Errorf("event %d: %w", f.eventId, ErrNoEntries)
}

// GetEntries returns the registered entries for eventId. The JSON API and
// the public entries page are fetched concurrently; the API answer is
// preferred whenever it has entries.
func (client *Client) GetEntries(ctx context.Context,
	eventId int64) ([]Entry, Source, error) {

	return client.fetchEvent(ctx, eventId).entries()
}

// getEntriesViaWeb scrapes the public entries page for eventId.
func (client *Client) getEntriesViaWeb(ctx context.Context,
	eventId int64) ([]Entry, error) {

	url := fmt.Sprintf("%v/tournament/entries/%d", client.webBase, eventId)
	doc, err := client.fetchDoc(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch entries page: %w", err)
	}

	return parseEntries(doc), nil
}

// memberColumns locates the entries table columns from its header. Tables
// without a recognizable header use the layout "#, Name, Rating, USCF ID"
// with the section taken from the closest preceding h2 or h3 heading.
type memberColumns struct {
	name, rating, uscfID, section, byes int
}

var uscfIDInLink = regexp.MustCompile(`MbrDtlMain\.php\?(\d{6,8})`)

func findMemberColumns(tbl *goquery.Selection) memberColumns {
	cols := memberColumns{name: 1, rating: 2, uscfID: 3, section: -1, byes: -1}
	tbl.Find("thead th").Each(func(i int, th *goquery.Selection) {
		switch strings.ToLower(strings.TrimSpace(th.Text())) {
		case "name":
			cols.name = i
		case "rating":
			cols.rating = i
		case "uscf id", "uscf":
			cols.uscfID = i
		case "section":
			cols.section = i
		case "byes":
			cols.byes = i
		}
	})

	return cols
}

func (cols memberColumns) minCells() int {
	return max(cols.name, cols.rating, cols.uscfID, cols.section) + 1
}

// parseEntries extracts entries from every members table in the document.
func parseEntries(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find("table#members").Each(func(_ int, tbl *goquery.Selection) {
		cols := findMemberColumns(tbl)
		heading := sectionHeading(tbl)
		tbl.Find("tbody tr").Each(func(_ int, s *goquery.Selection) {
			cells := s.Find("td")
			if cells.Length() < cols.minCells() {
				return
			}
			text := func(idx int) string {
				return strings.TrimSpace(cells.Eq(idx).Text())
			}
			name := internal.NormalizeName(text(cols.name))
			if name == "" {
				return
			}

			e := Entry{
				SectionName:   heading,
				PrimaryRating: text(cols.rating),
			}
			e.FirstName, e.LastName = splitName(name)
			e.UscfID = parseUscfID(cells.Eq(cols.uscfID))
			if cols.section >= 0 {
				e.SectionName = text(cols.section)
			}
			if cols.byes >= 0 && cols.byes < cells.Length() {
				e.ByeRequests = text(cols.byes)
			}
			entries = append(entries, e)
		})
	})

	return entries
}

// parseUscfID reads the member id from a cell holding either the bare id
// or a link to the member's USCF page.
func parseUscfID(cell *goquery.Selection) int {
	if href, ok := cell.Find("a").Attr("href"); ok {
		if m := uscfIDInLink.FindStringSubmatch(href); m != nil {
			id, _ := strconv.Atoi(m[1])
			return id
		}
	}
	id, _ := strconv.Atoi(strings.TrimSpace(cell.Text()))

	return id
}

func sectionHeading(tbl *goquery.Selection) string {
	h := tbl.PrevAllFiltered("h2, h3").First()
	if h.Length() == 0 {
		return ""
	}
	name := strings.TrimSpace(h.Text())

	return strings.TrimSpace(strings.TrimSuffix(name, "Section"))
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	}

	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}

// DisplayName is the entrant's normalized full name.
func (e Entry) DisplayName() string {
	return internal.NormalizeName(e.FirstName + " " + e.LastName)
}
