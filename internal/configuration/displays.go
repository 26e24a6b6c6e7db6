package configuration

type DisplayConfig struct {
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
	Banner  string `json:"banner"`

	Terminal *TerminalDisplayConfig `json:"terminal,omitempty"`
	File     *FileDisplayConfig     `json:"file,omitempty"`
	Log      *LogDisplayConfig      `json:"log,omitempty"`
}

type TerminalDisplayConfig struct {
	// Border draws a frame around the emulated lcd
	Border bool `json:"border"`
	// LogFile receives the log while the display is shown, it is discarded if empty
	LogFile string `json:"logFile"`
}

type FileDisplayConfig struct {
	Path string `json:"path"`
}

type LogDisplayConfig struct{}
