/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const eventsJSON = `[
  {"eventId": 1312, "title": "Thursday Night Round Robin", "date": "2025-06-19T18:30:00",
   "startDate": "2025-06-19T18:30:00", "endDate": null, "dayOfWeek": "Thursday",
   "dateDisplay": "Thu Jun 19"},
  {"eventId": 1290, "title": "Big Money Swiss", "date": "2025-06-07T10:00:00",
   "startDate": "2025-06-07T10:00:00", "endDate": "", "dayOfWeek": "Saturday",
   "dateDisplay": "Sat Jun 7"}
]`

const eventDetailJSON = `{
  "eventId": 1312,
  "title": "Thursday Night Round Robin",
  "startDate": "2025-06-19T18:30:00",
  "endDate": "null",
  "dateDisplay": "Thu Jun 19",
  "sections": ["Open", "U1800"],
  "sectionDisplay": "Open, U1800",
  "registrationEndDate": "",
  "entryFeeSummary": "$20",
  "eventFormat": "6-player round robin",
  "timeControl": "G/45;d5",
  "roundTimes": "6:30pm",
  "creationDate": "2025-05-01T09:00:00",
  "lastChangeDate": "2025-06-18T12:00:00",
  "numEntries": 9,
  "entries": [
    {"firstName": "Uma", "lastName": "Low", "uscfId": 21, "sectionName": "U1800",
     "registrationDate": "2025-06-03T09:00:00", "primaryRating": "1501/30"},
    {"firstName": "Ann", "lastName": "Alder", "uscfId": 11, "sectionName": "Open",
     "registrationDate": "2025-06-01T09:00:00", "primaryRating": "2100"},
    {"firstName": "Bob", "lastName": "Birch", "uscfId": 12, "sectionName": "Open",
     "registrationDate": "2025-06-02T09:00:00", "primaryRating": "2050"},
    {"firstName": "Cid", "lastName": "Cedar", "uscfId": 13, "sectionName": "Open",
     "registrationDate": "2025-06-03T09:00:00", "primaryRating": "2010"},
    {"firstName": "Vic", "lastName": "Vale", "uscfId": 22, "sectionName": "U1800",
     "registrationDate": "2025-06-01T09:00:00", "primaryRating": "1600"},
    {"firstName": "Dee", "lastName": "Dogwood", "uscfId": 14, "sectionName": "Open",
     "registrationDate": "2025-06-04T09:00:00", "primaryRating": "1990"},
    {"firstName": "Eve", "lastName": "Elm", "uscfId": 15, "sectionName": "Open",
     "registrationDate": "2025-06-05T09:00:00", "primaryRating": "1950"},
    {"firstName": "Wes", "lastName": "Willow", "uscfId": 23, "sectionName": "U1800",
     "registrationDate": "2025-06-02T09:00:00", "primaryRating": ""},
    {"firstName": "Fay", "lastName": "Fir", "uscfId": 16, "sectionName": "Open",
     "registrationDate": "2025-06-06T09:00:00", "primaryRating": "1900"}
  ]
}`

const entriesHTML = `<html><body>
<h2>Open Section</h2>
<table id="members"><thead><tr><th>#</th><th>Name</th><th>Rating</th><th>USCF</th></tr></thead>
<tbody>
<tr><td>1</td><td>Alder,  Ann</td><td>2100</td><td>11</td></tr>
<tr><td>2</td><td>Bob Birch</td><td>2050</td><td>12</td></tr>
<tr><td>3</td><td></td><td></td><td></td></tr>
</tbody></table>
<h2>U1800 Section</h2>
<table id="members"><tbody>
<tr><td>1</td><td>Vic Vale</td><td>unrated</td><td>22</td></tr>
<tr><td>short row</td></tr>
</tbody></table>
</body></html>`

// newTestServer serves the club API under /api and the website at the
// root. A nil handler answers 500.
func newTestServer(t *testing.T, detail, entries http.HandlerFunc) (*Client,
	*httptest.Server) {

	fail := func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unavailable", http.StatusInternalServerError)
	}
	if detail == nil {
		detail = fail
	}
	if entries == nil {
		entries = fail
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(eventsJSON))
	})
	mux.HandleFunc("/api/event/1312", detail)
	mux.HandleFunc("/tournament/entries/1312", entries)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewClientWith(srv.Client(), srv.URL+"/api", srv.URL), srv
}

func serve(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	}
}

const entriesWithSectionColumnHTML = `<html><body>
<table id="members">
<thead><tr><th>Name</th><th>USCF ID</th><th>Rating</th><th>Section</th><th>Byes</th></tr></thead>
<tbody>
<tr><td>Cedar, Cid</td><td><a href="https://www.uschess.org/msa/MbrDtlMain.php?12846607">12846607</a></td><td>2010</td><td>Open</td><td>3</td></tr>
<tr><td>Uma Low</td><td>unknown</td><td>unrated</td><td>U1800</td><td></td></tr>
</tbody></table>
</body></html>`
