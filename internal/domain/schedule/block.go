package schedule

import (
	"strings"
	"time"
	"unicode/utf8"
)

type BlockType string

const (
	BlockManual BlockType = "MANUAL"
	BlockBreak  BlockType = "BREAK"
)

// BlockSource distingue bloqueios gravados do almoço sintetizado na leitura.
type BlockSource string

const (
	SourceBarberBlock BlockSource = "BARBER_BLOCK"
	SourceLunch       BlockSource = "LUNCH"
)

const maxNoteLength = 255

type BlockInput struct {
	Start time.Time
	End   time.Time
	Type  string
	Note  *string
}

// ValidateBlock normaliza o bloqueio para UTC e valida tipo, faixa e nota.
func ValidateBlock(in BlockInput) (Range, BlockType, *string, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return Range{}, "", nil, Invalid(KindInvalidRange, "start and end are required")
	}
	r := Range{Start: in.Start.UTC(), End: in.End.UTC()}
	if !r.Valid() {
		return Range{}, "", nil, Invalid(KindInvalidRange, "end must be after start")
	}

	t := BlockType(strings.ToUpper(strings.TrimSpace(in.Type)))
	if t == "" {
		t = BlockManual
	}
	if t != BlockManual && t != BlockBreak {
		return Range{}, "", nil, Invalid(KindInvalidBlockType, "unknown block type %q", in.Type)
	}

	var note *string
	if in.Note != nil {
		n := strings.TrimSpace(*in.Note)
		if utf8.RuneCountInString(n) > maxNoteLength {
			return Range{}, "", nil, Invalid(KindInvalidNote, "note longer than %d characters", maxNoteLength)
		}
		if n != "" {
			note = &n
		}
	}

	return r, t, note, nil
}
