/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeb26/boylstonchessclub-roundrobin/bcc"
	"github.com/mikeb26/boylstonchessclub-roundrobin/roundrobin"
)

func runCmd(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := commands[name](context.Background(), args, &buf)
	return buf.String(), err
}

func TestTables(t *testing.T) {
	out, err := runCmd(t, "tables", "--players", "4")
	require.NoError(t, err)
	assert.Equal(t, "Round 1: 1-4 2-3\n"+
		"Round 2: 4-3 1-2\n"+
		"Round 3: 2-4 3-1\n"+
		"score 7; ideal score 4\n", out)
}

func TestTablesIdeal(t *testing.T) {
	out, err := runCmd(t, "tables", "--players", "5", "--ideal", "--width", "1")
	require.NoError(t, err)
	assert.Equal(t, "Round 1: 3-4 2-5 1-BYE\n"+
		"Round 2: 5-3 BYE-4 1-2\n"+
		"Round 3: 2-BYE 3-1 4-5\n"+
		"Round 4: 1-4 BYE-5 2-3\n"+
		"Round 5: 5-1 4-2 3-BYE\n"+
		"score 6; ideal score 6\n", out)
}

func TestTablesNamesAutoWidth(t *testing.T) {
	out, err := runCmd(t, "tables", "--names", "Ann, Bo,Cyd", "--method", "circle")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Round   1: Ann-BYE    Bo-Cyd\n"), out)

	// width counts terminal cells, not bytes
	out, err = runCmd(t, "tables", "--names", "Zoë,Bo,Cyd", "--method", "circle")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Round   1: Zoë-BYE    Bo-Cyd\n"), out)
}

func TestTablesRange(t *testing.T) {
	out, err := runCmd(t, "tables", "--ideal", "--from", "8", "--to", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "8 players\nRound 1: 4-5 2-7 3-6 1-8\n")
	assert.Contains(t, out, "\n9 players\n")
	assert.Contains(t, out, "available for: .. 7, 8, 11 ..")
	assert.Contains(t, out, "available for: .. 8, 11, 12 ..")

	_, err = runCmd(t, "tables", "--from", "5", "--to", "3")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	out, err := runCmd(t, "score", "--players", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Competitor  1  2  Score  First\n")
	assert.Contains(t, out, "Total score: 7\n")

	out, err = runCmd(t, "score", "--players", "14", "--strategy", "diag_r2l2r")
	require.NoError(t, err)
	assert.Contains(t, out, "Total score: 14\n")
}

func TestEqualize(t *testing.T) {
	out, err := runCmd(t, "equalize", "--players", "14")
	require.NoError(t, err)
	assert.Contains(t, out,
		"score 37 -> 14 via DIAG_R2L2R (offset 0); ideal score 14\n")

	out, err = runCmd(t, "equalize", "--players", "14", "--strategy",
		"DIAG_R2L", "--offset", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "score 37 -> 56 via DIAG_R2L (offset 0)")

	a, err := runCmd(t, "equalize", "--players", "10", "--strategy",
		"BRUTE_FORCE", "--seed", "9")
	require.NoError(t, err)
	b, err := runCmd(t, "equalize", "--players", "10", "--strategy",
		"BRUTE_FORCE", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = runCmd(t, "equalize", "--players", "4", "--strategy", "ZIGZAG")
	assert.ErrorIs(t, err, roundrobin.ErrUnknownStrategy)
}

func TestSearch(t *testing.T) {
	out, err := runCmd(t, "search", "--players", "10")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out,
		"score 25 -> 23 via DIAG_R2L2R (offset 0); ideal score 10; best found, not ideal\n"),
		out)

	out, err = runCmd(t, "search", "--players", "10", "--budget", "3",
		"--seed", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "ideal score 10")

	_, err = runCmd(t, "search", "--players", "10", "--budget", "-1")
	assert.Error(t, err)
}

func TestIdeal(t *testing.T) {
	out, err := runCmd(t, "ideal", "--players", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "score 6; ideal score 6\n")

	_, err = runCmd(t, "ideal", "--players", "10")
	assert.ErrorIs(t, err, roundrobin.ErrIdealUnavailable)
}

func TestFieldFlagErrors(t *testing.T) {
	_, err := runCmd(t, "tables")
	assert.ErrorContains(t, err, "--players")

	_, err = runCmd(t, "tables", "--players", "4", "--method", "swiss")
	assert.ErrorIs(t, err, roundrobin.ErrUnknownMethod)

	_, err = runCmd(t, "tables", "--players", "4", "--width", "-1")
	assert.Error(t, err)

	_, err = runCmd(t, "tables", "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestHelp(t *testing.T) {
	out, err := runCmd(t, "help")
	require.NoError(t, err)
	assert.Equal(t, helpText, out)
	for name := range commands {
		assert.Contains(t, helpText, "  "+name, "help is missing %v", name)
	}
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: Thursday Quad
competitors: ["1", "2", "3", "4", "5", "6"]
mode: search
`), 0o644))

	out, err := runCmd(t, "config", "--file", path, "--occurrences")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Thursday Quad\nRound 1: 3-4 2-5 1-6\n"), out)
	assert.Contains(t, out, "score 13 -> 6 via DIAG_R2L2R (offset 0); ideal score 6; ideal\n")
	assert.Contains(t, out, "Total score: 6\n")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("competitors: [a, a]\n"), 0o644))
	_, err = runCmd(t, "config", "--file", bad)
	assert.ErrorContains(t, err, "duplicate name")

	_, err = runCmd(t, "config")
	assert.Error(t, err)
}

func TestConfigEqualize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eq.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
competitors: ["1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", "13", "14"]
mode: equalize
strategy: DIAG_L2R
width: 2
`), 0o644))

	out, err := runCmd(t, "config", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "score 37 -> 50 via DIAG_L2R (offset 0); ideal score 14\n")
}

func withClubServer(t *testing.T) {
	t.Helper()
	date := time.Now().Add(48 * time.Hour).UTC().Format("2006-01-02T15:04:05")
	mux := http.NewServeMux()
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `[{"eventId": 77, "title": "Quad", "date": %q}]`, date)
	})
	mux.HandleFunc("/api/event/77", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"eventId": 77, "title": "Quad", "dateDisplay": "Thu",
		  "entries": [
		    {"firstName": "Ann", "lastName": "Alder", "sectionName": "Open"},
		    {"firstName": "Bob", "lastName": "Birch", "sectionName": "Open"},
		    {"firstName": "Cid", "lastName": "Cedar", "sectionName": "Open"},
		    {"firstName": "Dee", "lastName": "Dogwood", "sectionName": "Open"}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	orig := newClient
	newClient = func(context.Context) *bcc.Client {
		return bcc.NewClientWith(srv.Client(), srv.URL+"/api", srv.URL)
	}
	t.Cleanup(func() { newClient = orig })
}

func TestCal(t *testing.T) {
	withClubServer(t)

	out, err := runCmd(t, "cal", "--days", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "  - Quad (EventID:77)\n")

	out, err = runCmd(t, "cal", "--days", "1")
	require.NoError(t, err)
	assert.Equal(t, "No events found in the next 1 days.\n", out)
}

func TestEvent(t *testing.T) {
	withClubServer(t)

	out, err := runCmd(t, "event", "--eventid", "77")
	require.NoError(t, err)
	assert.Contains(t, out, "Title: Quad\n")
	assert.Contains(t, out, "Entries: 4\n")
	assert.Contains(t, out, ":   Ann Alder-Dee Dogwood")
	assert.Contains(t, out, "score 7 -> 7 via DIAG_L2R (offset 0); ideal score 4; no improvement found\n")

	_, err = runCmd(t, "event")
	assert.Error(t, err)
}
