package configuration

type SensorConfig struct {
	ID      string               `json:"id"`
	File    *FileSensorConfig    `json:"file,omitempty"`
	Cmd     *CmdSensorConfig     `json:"cmd,omitempty"`
	Serial  *SerialSensorConfig  `json:"serial,omitempty"`
	Virtual *VirtualSensorConfig `json:"virtual,omitempty"`
}

type FileSensorConfig struct {
	Path string `json:"path"`
	// Scale divides the value read from the file, e.g. 4 to fold a 12 bit ADC into 10 bits
	Scale float64 `json:"scale,omitempty"`
}

type CmdSensorConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type SerialSensorConfig struct {
	Device string `json:"device"`
	Baud   int    `json:"baud"`
	// Request is written to the port before each read, if set
	Request string `json:"request,omitempty"`
}

type VirtualSensorConfig struct {
	Value int `json:"value"`
}
