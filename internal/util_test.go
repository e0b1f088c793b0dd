/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateOrZero(t *testing.T) {
	for _, in := range []string{"", "null"} {
		got, err := ParseDateOrZero(in)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	}

	got, err := ParseDateOrZero("2025-06-19T18:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 19, 18, 30, 0, 0, time.UTC), got.UTC())

	_, err = ParseDateOrZero("not a date")
	assert.Error(t, err)
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Ann  Smith":     "Ann Smith",
		" Smith, Ann ":   "Ann Smith",
		"Smith,Ann Lee":  "Ann Lee Smith",
		"Smith,":         "Smith",
		"Cher":           "Cher",
		"  van   Dyke  ": "van Dyke",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeName(in), "%q", in)
	}
}
