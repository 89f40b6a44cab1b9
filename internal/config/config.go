// internal/config/config.go
package config

type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Controller ControllerConfig `yaml:"controller"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
	File  string `yaml:"file"`  // empty => stderr

	// Rotation (only when File is set)
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

type ControllerConfig struct {
	Channels []ChannelConfig `yaml:"channels"`
}

// ---- CHANNEL ----

type ChannelConfig struct {
	ID            string         `yaml:"id"`
	ThresholdFile string         `yaml:"threshold_file"`
	Source        SourceConfig   `yaml:"source"`
	Targets       []TargetConfig `yaml:"targets"`
	Poll          PollConfig     `yaml:"poll"`

	// Status block (optional, opt-in)
	Status *StatusConfig `yaml:"status"`
}

// ---- SETPOINT SOURCE ----

const (
	KindModbus    = "modbus"
	KindModbusRTU = "modbus-rtu"
	KindLakeshore = "lakeshore"
)

type SourceConfig struct {
	Kind      string `yaml:"kind"` // modbus | modbus-rtu | lakeshore
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// modbus / modbus-rtu: setpoint as float32 in two holding registers
	UnitID    uint8  `yaml:"unit_id"`
	Register  uint16 `yaml:"register"`
	WordOrder string `yaml:"word_order"` // big | little

	// modbus-rtu only
	Serial SerialConfig `yaml:"serial"`

	// lakeshore: control loop queried with SETP?
	Loop int `yaml:"loop"`
}

type SerialConfig struct {
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"` // N | E | O
	StopBits int    `yaml:"stop_bits"`
}

// ---- EXCITATION TARGET ----

type TargetConfig struct {
	Kind      string `yaml:"kind"` // modbus | lakeshore
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// modbus: excitation code written to one holding register
	UnitID   uint8  `yaml:"unit_id"`
	Register uint16 `yaml:"register"`

	// lakeshore: sensor input letter for INTYPE
	Input string `yaml:"input"`
}

// ---- STATUS ----

type StatusConfig struct {
	Endpoint   string `yaml:"endpoint"`
	UnitID     uint8  `yaml:"unit_id"`
	Slot       uint16 `yaml:"slot"`
	DeviceName string `yaml:"device_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}
