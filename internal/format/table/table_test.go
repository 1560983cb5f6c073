package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"ID", "TITLE", "DONE"},
		{"6", "Vertical Cut", "3"},
		{"15", "Zoom", "12"},
	}
	got := Format(rows, []Alignment{AlignRight, AlignLeft, AlignRight})
	assert.Equal(t, []string{
		"ID  TITLE         DONE",
		" 6  Vertical Cut     3",
		"15  Zoom            12",
	}, got)
}

func TestFormatMeasuresCells(t *testing.T) {
	rows := [][]string{
		{"✓", "a"},
		{"\x1b[1mbold\x1b[0m", "b"},
	}
	got := Format(rows, nil)
	assert.Equal(t, "✓     a", got[0])
	assert.Equal(t, "\x1b[1mbold\x1b[0m  b", got[1])
}

func TestFormatRaggedRows(t *testing.T) {
	got := Format([][]string{{"a", "bb"}, {"ccc"}}, nil)
	assert.Equal(t, []string{"a    bb", "ccc"}, got)
}

func TestFormatEmpty(t *testing.T) {
	assert.Nil(t, Format(nil, nil))
}
