package model

// SignalKind identifies the series currently drawn as the level line.
type SignalKind string

const (
	SignalPowermonitor SignalKind = "Powermonitor"
	SignalBatteryLevel SignalKind = "Battery Level"
)

// LevelConfig describes how a level line series is presented.
type LevelConfig struct {
	Name        SignalKind
	DisplayName string
	Unit        string
}

var levelConfigs = map[SignalKind]LevelConfig{
	SignalPowermonitor: {Name: SignalPowermonitor, DisplayName: "Powermonitor", Unit: "mA"},
	SignalBatteryLevel: {Name: SignalBatteryLevel, DisplayName: "Battery Level", Unit: "%"},
}

// KnownSignals lists the supported level line kinds in display order.
func KnownSignals() []SignalKind {
	return []SignalKind{SignalBatteryLevel, SignalPowermonitor}
}

// ConfigFor returns the presentation config of kind.
func ConfigFor(kind SignalKind) (LevelConfig, bool) {
	cfg, ok := levelConfigs[kind]
	return cfg, ok
}

// ParseSignalKind accepts either the canonical name or a loose alias
// ("powermonitor", "battery", "battery_level").
func ParseSignalKind(s string) (SignalKind, bool) {
	switch s {
	case string(SignalPowermonitor), "powermonitor", "power":
		return SignalPowermonitor, true
	case string(SignalBatteryLevel), "battery", "battery_level", "level":
		return SignalBatteryLevel, true
	}
	return "", false
}
