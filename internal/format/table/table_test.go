package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"name", "1 KiB"},
		{"longer-name", "12 B"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight})
	assert.Equal(t, []string{
		"name         1 KiB",
		"longer-name   12 B",
	}, got)
}

func TestCellWidthCountsWideRunesAndIgnoresEscapes(t *testing.T) {
	assert.Equal(t, 4, CellWidth("日本"))
	assert.Equal(t, 3, CellWidth("\x1b[1mabc\x1b[0m"))
}

func TestWidths(t *testing.T) {
	assert.Nil(t, Widths(nil))
	assert.Equal(t, []int{3, 1}, Widths([][]string{{"abc", "d"}, {"e", ""}}))
	assert.Nil(t, Format(nil, nil))
}
