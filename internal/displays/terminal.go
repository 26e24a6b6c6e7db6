package displays

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/ui"
)

var (
	lcdStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// TerminalDisplay emulates a character lcd in the terminal
type TerminalDisplay struct {
	screen  tcell.Screen
	buffer  *buffer
	columns int
	rows    int
	border  bool

	// logOutput receives the log while the screen owns the terminal
	logOutput io.Writer
}

func NewTerminalDisplay(config configuration.DisplayConfig) (*TerminalDisplay, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}

	logOutput, err := openLogOutput(config.Terminal)
	if err != nil {
		return nil, err
	}

	d, err := newTerminalDisplay(config, screen)
	if err != nil {
		closeLogOutput(logOutput)
		return nil, err
	}
	d.logOutput = logOutput
	ui.SetOutput(logOutput)
	return d, nil
}

// openLogOutput returns the configured log file, or a sink discarding the log
func openLogOutput(config *configuration.TerminalDisplayConfig) (io.Writer, error) {
	if config == nil || len(config.LogFile) <= 0 {
		ui.Info("Terminal display active, log output is suppressed until exit")
		return io.Discard, nil
	}
	file, err := os.OpenFile(config.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", config.LogFile, err)
	}
	ui.Info("Terminal display active, logging to %s", config.LogFile)
	return file, nil
}

func closeLogOutput(output io.Writer) {
	if closer, ok := output.(io.Closer); ok {
		_ = closer.Close()
	}
}

func newTerminalDisplay(config configuration.DisplayConfig, screen tcell.Screen) (*TerminalDisplay, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	d := &TerminalDisplay{
		screen:  screen,
		buffer:  newBuffer(config.Columns, config.Rows),
		columns: config.Columns,
		rows:    config.Rows,
		border:  config.Terminal != nil && config.Terminal.Border,
	}
	d.screen.Clear()
	d.render()
	return d, nil
}

func (d *TerminalDisplay) SetCursor(column int, row int) error {
	d.buffer.setCursor(column, row)
	return nil
}

func (d *TerminalDisplay) Print(text string) error {
	d.buffer.print(text)
	d.render()
	return nil
}

func (d *TerminalDisplay) Clear() error {
	d.buffer.clear()
	d.render()
	return nil
}

func (d *TerminalDisplay) render() {
	offset := 0
	if d.border {
		offset = 1
		d.drawBorder()
	}
	for y, row := range d.buffer.cells {
		for x, r := range row {
			d.screen.SetContent(x+offset, y+offset, r, nil, lcdStyle)
		}
	}
	d.screen.Show()
}

func (d *TerminalDisplay) drawBorder() {
	right := d.columns + 1
	bottom := d.rows + 1
	for x := 1; x < right; x++ {
		d.screen.SetContent(x, 0, tcell.RuneHLine, nil, borderStyle)
		d.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		d.screen.SetContent(0, y, tcell.RuneVLine, nil, borderStyle)
		d.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	d.screen.SetContent(0, 0, tcell.RuneULCorner, nil, borderStyle)
	d.screen.SetContent(right, 0, tcell.RuneURCorner, nil, borderStyle)
	d.screen.SetContent(0, bottom, tcell.RuneLLCorner, nil, borderStyle)
	d.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

func (d *TerminalDisplay) Columns() int {
	return d.columns
}

func (d *TerminalDisplay) Rows() int {
	return d.rows
}

func (d *TerminalDisplay) Lines() []string {
	return d.buffer.lines()
}

// WaitForQuit blocks until Ctrl+C or Escape is pressed, or ctx is done.
// The screen puts the terminal into raw mode, so these keys never raise SIGINT.
func (d *TerminalDisplay) WaitForQuit(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := d.screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return ctx.Err()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyEscape {
				return nil
			}
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}
}

func (d *TerminalDisplay) Close() error {
	d.screen.Fini()
	if d.logOutput != nil {
		ui.SetOutput(os.Stdout)
		closeLogOutput(d.logOutput)
		d.logOutput = nil
	}
	return nil
}
