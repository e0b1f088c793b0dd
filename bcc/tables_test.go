/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-roundrobin/render"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

func sectionOf(name string, n int) Section {
	sec := Section{Name: name}
	for i := 1; i <= n; i++ {
		sec.Entries = append(sec.Entries, Entry{FirstName: name,
			LastName: fmt.Sprintf("%d", i)})
	}
	return sec
}

func TestBuildSectionTablesSearch(t *testing.T) {
	seed := uint64(11)
	sections := []Section{sectionOf("Open", 6), sectionOf("U1800", 3),
		sectionOf("U1200", 10)}
	tables, err := BuildSectionTables(context.Background(), sections,
		TableOptions{Method: roundrobin.Berger, Search: true,
			BruteForceBudget: 5, Seed: &seed})
	require.NoError(t, err)
	require.Len(t, tables, 3)

	open := tables[0]
	assert.Equal(t, "Open", open.Section.Name)
	require.NotNil(t, open.Result)
	assert.True(t, open.Result.IsIdeal())
	assert.Equal(t, 6, open.Justice.Total)
	assert.Len(t, open.Schedule, 5)

	u1800 := tables[1]
	assert.Len(t, u1800.Competitors, 4)
	assert.True(t, u1800.Competitors[3].IsBye())
	assert.Equal(t, 7, u1800.Justice.Total)
	assert.False(t, u1800.Result.Improved())

	u1200 := tables[2]
	assert.LessOrEqual(t, u1200.Justice.Total, 23)
	assert.Equal(t, u1200.Result.Best.Score, u1200.Justice.Total)
}

func TestBuildSectionTablesSeedIsReproducible(t *testing.T) {
	seed := uint64(3)
	opts := TableOptions{Method: roundrobin.Berger, Search: true,
		BruteForceBudget: 20, Seed: &seed}
	sections := []Section{sectionOf("A", 10), sectionOf("B", 16)}

	a, err := BuildSectionTables(context.Background(), sections, opts)
	require.NoError(t, err)
	b, err := BuildSectionTables(context.Background(), sections, opts)
	require.NoError(t, err)
	for i := range a {
		assert.True(t, a[i].Schedule.Equal(b[i].Schedule), "section %d", i)
	}
}

func TestBuildSectionTablesWithoutSearch(t *testing.T) {
	tables, err := BuildSectionTables(context.Background(),
		[]Section{sectionOf("Open", 6)}, TableOptions{Method: roundrobin.Berger})
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Nil(t, tables[0].Result)
	assert.Equal(t, 13, tables[0].Justice.Total)

	out := BuildTablesOutput(tables, render.Options{})
	assert.True(t, strings.HasPrefix(out, "Round 1: Open 1-Open 6 "), out)
	assert.True(t, strings.HasSuffix(out, "score 13; ideal score 6\n"), out)
	assert.NotContains(t, out, "Section")
}

func TestBuildSectionTablesEmptySection(t *testing.T) {
	_, err := BuildSectionTables(context.Background(),
		[]Section{sectionOf("Open", 4), {Name: "Empty"}},
		TableOptions{Method: roundrobin.Circle})
	require.ErrorIs(t, err, roundrobin.ErrNoCompetitors)
	assert.Contains(t, err.Error(), "section Empty")
}

func TestBuildSectionTablesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildSectionTables(ctx, []Section{sectionOf("Open", 4)},
		TableOptions{Method: roundrobin.Berger})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetSectionTables(t *testing.T) {
	client, _ := newTestServer(t, serve(eventDetailJSON), nil)

	tables, err := client.GetSectionTables(context.Background(), 1312,
		TableOptions{Method: roundrobin.Berger, Search: true})
	require.NoError(t, err)
	require.Len(t, tables, 2)

	// registration order seeds the tables
	assert.Equal(t, roundrobin.NewCompetitors("Ann Alder", "Bob Birch",
		"Cid Cedar", "Dee Dogwood", "Eve Elm", "Fay Fir"),
		tables[0].Competitors)
	assert.Equal(t, append(roundrobin.NewCompetitors("Vic Vale", "Wes Willow",
		"Uma Low"), roundrobin.Bye), tables[1].Competitors)

	out := BuildTablesOutput(tables, render.Options{Width: 11, Header: true})
	assert.Contains(t, out, "Open Section (6 players)\n")
	assert.Contains(t, out, "\nU1800 Section (3 players)\n")
	assert.Contains(t, out, "score 13 -> 6 via DIAG_R2L2R (offset 0); ideal score 6; ideal\n")
	assert.Contains(t, out, "score 7 -> 7 via DIAG_L2R (offset 0); ideal score 4; no improvement found\n")
}

func TestGetEventTablesFetchesDetailOnce(t *testing.T) {
	var detailHits, entriesHits atomic.Int32
	client, _ := newTestServer(t,
		func(w http.ResponseWriter, _ *http.Request) {
			detailHits.Add(1)
			w.Write([]byte(eventDetailJSON))
		},
		func(w http.ResponseWriter, _ *http.Request) {
			entriesHits.Add(1)
			w.Write([]byte(entriesHTML))
		})

	detail, tables, err := client.GetEventTables(context.Background(), 1312,
		TableOptions{Method: roundrobin.Berger})
	require.NoError(t, err)
	assert.Equal(t, int32(1), detailHits.Load())
	assert.Equal(t, int32(1), entriesHits.Load())
	assert.Equal(t, "Thursday Night Round Robin", detail.Title)
	require.Len(t, tables, 2)
	assert.Len(t, tables[0].Section.Entries, 6)
	assert.Nil(t, tables[0].Result)
}

func TestGetEventTablesEmptyAPIUsesWebsite(t *testing.T) {
	client, _ := newTestServer(t,
		serve(`{"eventId": 1312, "title": "Quad", "entries": []}`),
		serve(entriesHTML))

	detail, tables, err := client.GetEventTables(context.Background(), 1312,
		TableOptions{Method: roundrobin.Berger})
	require.NoError(t, err)
	assert.Equal(t, "Quad", detail.Title)
	require.Len(t, tables, 2)
	assert.Equal(t, "Open", tables[0].Section.Name)
}

func TestGetEventTablesNeedsDetail(t *testing.T) {
	client, _ := newTestServer(t, nil, serve(entriesHTML))

	_, _, err := client.GetEventTables(context.Background(), 1312,
		TableOptions{Method: roundrobin.Berger})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcc event detail")
}
