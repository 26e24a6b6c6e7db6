package displays

import (
	"context"
	"strings"

	"github.com/markusressel/light2servo/internal/configuration"
)

// Display is a cursor addressed character display (e.g. a 16x2 HD44780 lcd).
// Text printed past the last column of a row is truncated.
type Display interface {
	SetCursor(column int, row int) error
	Print(text string) error
	Clear() error

	Columns() int
	Rows() int

	Close() error
}

// QuitListener is implemented by displays that own the controlling terminal
type QuitListener interface {
	// WaitForQuit returns nil when the user asked to quit, or the ctx error
	WaitForQuit(ctx context.Context) error
}

func NewDisplay(config configuration.DisplayConfig) (Display, error) {
	if config.Terminal != nil {
		display, err := NewTerminalDisplay(config)
		if err != nil {
			return nil, err
		}
		return display, nil
	}

	if config.File != nil {
		return NewFileDisplay(config), nil
	}

	return NewLogDisplay(config), nil
}

// PadRight pads text with spaces to the given width, so it overwrites
// any longer text that was previously shown at the same position.
func PadRight(text string, width int) string {
	length := len([]rune(text))
	if length >= width {
		return text
	}
	return text + strings.Repeat(" ", width-length)
}

// buffer mirrors the content of a character display
type buffer struct {
	cells  [][]rune
	column int
	row    int
}

func newBuffer(columns int, rows int) *buffer {
	b := &buffer{
		cells: make([][]rune, rows),
	}
	for i := range b.cells {
		b.cells[i] = make([]rune, columns)
	}
	b.clear()
	return b
}

func (b *buffer) clear() {
	for _, row := range b.cells {
		for i := range row {
			row[i] = ' '
		}
	}
	b.column = 0
	b.row = 0
}

func (b *buffer) setCursor(column int, row int) {
	b.column = column
	b.row = row
}

// print writes text at the cursor and advances it, characters outside of the
// display area are dropped
func (b *buffer) print(text string) {
	for _, r := range text {
		if b.row >= 0 && b.row < len(b.cells) && b.column >= 0 && b.column < len(b.cells[b.row]) {
			b.cells[b.row][b.column] = r
		}
		b.column++
	}
}

func (b *buffer) line(row int) string {
	return string(b.cells[row])
}

func (b *buffer) lines() []string {
	result := make([]string, len(b.cells))
	for i := range b.cells {
		result[i] = b.line(i)
	}
	return result
}
