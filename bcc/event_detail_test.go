/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package bcc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEventDetail(t *testing.T) {
	client, _ := newTestServer(t, serve(eventDetailJSON), nil)

	detail, err := client.GetEventDetail(context.Background(), 1312)
	require.NoError(t, err)

	assert.Equal(t, 1312, detail.EventID)
	assert.Equal(t, "Thursday Night Round Robin", detail.Title)
	assert.False(t, detail.StartDate.IsZero())
	assert.True(t, detail.EndDate.IsZero())
	assert.True(t, detail.RegistrationEndDate.IsZero())
	require.Len(t, detail.Entries, 9)
	assert.Equal(t, "Uma Low", detail.Entries[0].DisplayName())
	assert.Equal(t, "U1800", detail.Entries[0].SectionName)
	assert.False(t, detail.Entries[0].RegistrationDate.IsZero())
}

func TestGetEventDetailNotFound(t *testing.T) {
	client, _ := newTestServer(t, nil, nil)

	_, err := client.GetEventDetail(context.Background(), 1312)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestBuildEventOutput(t *testing.T) {
	client, _ := newTestServer(t, serve(eventDetailJSON), nil)
	detail, err := client.GetEventDetail(context.Background(), 1312)
	require.NoError(t, err)

	out := BuildEventOutput(&detail, "**", true, true)
	assert.Contains(t, out, "**Title**: Thursday Night Round Robin\n")
	assert.Contains(t, out, "**URL**: https://boylstonchess.org/events/1312\n")
	assert.Contains(t, out, "**Time Control**: G/45;d5\n")
	assert.Contains(t, out, "**Entries**: 9 (Open:6 U1800:3)\n")
	assert.NotContains(t, out, "Prizes")

	plain := BuildEventOutput(&detail, "", false, false)
	assert.NotContains(t, plain, "Title")
	assert.Contains(t, plain, "EventID: 1312\n")
}
