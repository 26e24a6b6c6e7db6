package displays

import (
	"strings"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

// FileDisplay mirrors the display content into a text file, one line per row
type FileDisplay struct {
	path    string
	buffer  *buffer
	columns int
	rows    int
}

func NewFileDisplay(config configuration.DisplayConfig) *FileDisplay {
	return &FileDisplay{
		path:    config.File.Path,
		buffer:  newBuffer(config.Columns, config.Rows),
		columns: config.Columns,
		rows:    config.Rows,
	}
}

func (d *FileDisplay) SetCursor(column int, row int) error {
	d.buffer.setCursor(column, row)
	return nil
}

func (d *FileDisplay) Print(text string) error {
	d.buffer.print(text)
	return d.flush()
}

func (d *FileDisplay) Clear() error {
	d.buffer.clear()
	return d.flush()
}

func (d *FileDisplay) flush() error {
	filePath, err := util.ExpandHomeDir(d.path)
	if err != nil {
		return err
	}
	content := strings.Join(d.buffer.lines(), "\n") + "\n"
	return util.WriteStringToFileAtomic(content, filePath)
}

func (d *FileDisplay) Columns() int {
	return d.columns
}

func (d *FileDisplay) Rows() int {
	return d.rows
}

func (d *FileDisplay) Close() error {
	return nil
}
