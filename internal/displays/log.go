package displays

import (
	"strings"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/ui"
)

// LogDisplay prints the display content to the log whenever it changes
type LogDisplay struct {
	buffer  *buffer
	columns int
	rows    int
	last    string
}

func NewLogDisplay(config configuration.DisplayConfig) *LogDisplay {
	return &LogDisplay{
		buffer:  newBuffer(config.Columns, config.Rows),
		columns: config.Columns,
		rows:    config.Rows,
	}
}

func (d *LogDisplay) SetCursor(column int, row int) error {
	d.buffer.setCursor(column, row)
	return nil
}

func (d *LogDisplay) Print(text string) error {
	d.buffer.print(text)
	d.flush()
	return nil
}

func (d *LogDisplay) Clear() error {
	d.buffer.clear()
	d.flush()
	return nil
}

func (d *LogDisplay) flush() {
	content := "|" + strings.Join(d.buffer.lines(), "|") + "|"
	if content == d.last {
		return
	}
	d.last = content
	ui.Debug("Display: %s", content)
}

func (d *LogDisplay) Columns() int {
	return d.columns
}

func (d *LogDisplay) Rows() int {
	return d.rows
}

func (d *LogDisplay) Lines() []string {
	return d.buffer.lines()
}

func (d *LogDisplay) Close() error {
	return nil
}
