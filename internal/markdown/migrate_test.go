package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/trackdown/internal/domain"
)

var migrateNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestMigrateFullPattern(t *testing.T) {
	out := MigrateLines([]string{"- [done] ship the parser (1/2/24, 3:04:05 PM)"}, migrateNow)

	require.Len(t, out, 1)
	n := out[0]
	assert.Equal(t, domain.NoteDone, n.Status)
	assert.Equal(t, "ship the parser", n.Text)
	assert.Equal(t, "1/2/24, 3:04:05 PM", n.Timestamp)
	assert.Equal(t, migrateNow.UnixMilli(), n.ID)
}

func TestMigrateWithoutTimestamp(t *testing.T) {
	out := MigrateLines([]string{"- [todo] water the plants"}, migrateNow)

	require.Len(t, out, 1)
	assert.Equal(t, "water the plants", out[0].Text)
	assert.Equal(t, migrateNow.Format(TimestampLayout), out[0].Timestamp)
}

func TestMigrateUnmatchedLinePassesThroughRaw(t *testing.T) {
	out := MigrateLines([]string{"just some prose"}, migrateNow)

	require.Len(t, out, 1)
	assert.False(t, out[0].Structured())
	assert.Equal(t, "just some prose", out[0].Raw)
	assert.Zero(t, out[0].ID)
}

func TestMigrateAssignsDistinctIDs(t *testing.T) {
	out := MigrateLines([]string{
		"- [todo] first",
		"- [todo] second",
		"- [todo] third",
	}, migrateNow)

	require.Len(t, out, 3)
	base := migrateNow.UnixMilli()
	assert.Equal(t, base, out[0].ID)
	assert.Equal(t, base+1, out[1].ID)
	assert.Equal(t, base+2, out[2].ID)
}

func TestMigrateIdempotent(t *testing.T) {
	notes := []domain.Note{
		{ID: 42, Text: "already here", Timestamp: "1/1/24, 10:00:00 AM", Status: domain.NoteTodo},
		{Raw: "- [todo] never migrated"},
	}

	out := Migrate(notes, migrateNow)

	// First element is structured, so the whole batch is left alone.
	assert.Equal(t, notes, out)
}

func TestMigrateMixedBatch(t *testing.T) {
	notes := []domain.Note{
		{Raw: "- [todo] legacy line"},
		{ID: 42, Text: "structured", Timestamp: "1/1/24, 10:00:00 AM", Status: domain.NoteDone},
	}

	out := Migrate(notes, migrateNow)

	require.Len(t, out, 2)
	assert.True(t, out[0].Structured())
	assert.Equal(t, "legacy line", out[0].Text)
	assert.Equal(t, notes[1], out[1])
}

func TestMigrateEmpty(t *testing.T) {
	assert.Nil(t, MigrateLines(nil, migrateNow))
	assert.Empty(t, Migrate(nil, migrateNow))
}
