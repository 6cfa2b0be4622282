package consumption

// Config holds the power and carbon coefficients of the model.
// Units:
//   - GridIntensity: grams CO2e per kWh
//   - CPUWatts: average CPU power draw while a unit burns CPU time, Watts
//   - MemWattsPerGB: memory power draw per resident GB, Watts
type Config struct {
	GridIntensity float64 `json:"grid_intensity_g_per_kwh"`
	CPUWatts      float64 `json:"avg_cpu_watts"`
	MemWattsPerGB float64 `json:"mem_watts_per_gb"`
}

const (
	DefaultGridIntensity = 400.0 // g CO2e/kWh
	DefaultCPUWatts      = 30.0  // W
	DefaultMemWattsPerGB = 0.372 // W/GB

	// JoulesPerKWh converts Joules to kWh.
	JoulesPerKWh = 3_600_000.0
)

// DefaultConfig returns a Config pre-filled with the built-in coefficients.
func DefaultConfig() Config {
	return *_defaultConfig()
}

func _defaultConfig() *Config {
	return &Config{
		GridIntensity: DefaultGridIntensity,
		CPUWatts:      DefaultCPUWatts,
		MemWattsPerGB: DefaultMemWattsPerGB,
	}
}

// Result is the energy and carbon breakdown of one completed unit.
type Result struct {
	CPUJoules   float64 // J
	MemJoules   float64 // J
	TotalJoules float64 // J
	KWh         float64 // kWh
	CO2Grams    float64 // g CO2e
}
