package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBlock(t *testing.T) {
	sp := mustLoc(t, "America/Sao_Paulo")
	start := time.Date(2025, 1, 6, 10, 0, 0, 0, sp)

	r, kind, note, err := ValidateBlock(BlockInput{
		Start: start,
		End:   start.Add(time.Hour),
		Type:  " break ",
		Note:  strPtr("  médico  "),
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, r.Start.Location())
	assert.True(t, r.Start.Equal(start))
	assert.Equal(t, BlockBreak, kind)
	require.NotNil(t, note)
	assert.Equal(t, "médico", *note)
}

func TestValidateBlockDefaults(t *testing.T) {
	start := time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC)

	_, kind, note, err := ValidateBlock(BlockInput{Start: start, End: start.Add(time.Minute), Note: strPtr("   ")})
	require.NoError(t, err)
	assert.Equal(t, BlockManual, kind)
	assert.Nil(t, note)
}

func TestValidateBlockCountsNoteCharacters(t *testing.T) {
	start := time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC)

	// 255 letras acentuadas ocupam 510 bytes
	accented := strings.Repeat("ã", 255)
	_, _, note, err := ValidateBlock(BlockInput{Start: start, End: start.Add(time.Hour), Note: &accented})
	require.NoError(t, err)
	assert.Equal(t, accented, *note)

	longer := accented + "é"
	_, _, _, err = ValidateBlock(BlockInput{Start: start, End: start.Add(time.Hour), Note: &longer})
	assert.True(t, IsValidationKind(err, KindInvalidNote), "got %v", err)
}

func TestValidateBlockRejects(t *testing.T) {
	start := time.Date(2025, 1, 6, 13, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   BlockInput
		kind ValidationKind
	}{
		{"missing start", BlockInput{End: start}, KindInvalidRange},
		{"empty range", BlockInput{Start: start, End: start}, KindInvalidRange},
		{"inverted", BlockInput{Start: start, End: start.Add(-time.Hour)}, KindInvalidRange},
		{"unknown type", BlockInput{Start: start, End: start.Add(time.Hour), Type: "VACATION"}, KindInvalidBlockType},
		{"long note", BlockInput{Start: start, End: start.Add(time.Hour), Note: strPtr(strings.Repeat("x", 256))}, KindInvalidNote},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, _, err := ValidateBlock(tc.in)
			assert.True(t, IsValidationKind(err, tc.kind), "got %v", err)
		})
	}
}

func TestWindowAndRange(t *testing.T) {
	a := Window{Start: 600, End: 630}
	assert.True(t, a.Overlaps(Window{Start: 615, End: 645}))
	assert.False(t, a.Overlaps(Window{Start: 630, End: 660}))
	assert.False(t, a.Overlaps(Window{Start: 570, End: 600}))
	assert.True(t, Window{Start: 540, End: 1080}.Contains(Window{Start: 540, End: 1080}))
	assert.Equal(t, Window{Start: 0, End: 1440}, Window{Start: -30, End: 1500}.Clamp(0, 1440))

	base := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	r := Range{Start: base, End: base.Add(30 * time.Minute)}
	assert.True(t, r.Valid())
	assert.Equal(t, 30*time.Minute, r.Duration())
	assert.False(t, r.Overlaps(Range{Start: r.End, End: r.End.Add(time.Hour)}))
	assert.True(t, r.Overlaps(Range{Start: base.Add(29 * time.Minute), End: base.Add(time.Hour)}))
}
