package model

// Default values applied when the config file omits a field
const (
	DefaultMethodRate  = 100
	DefaultMethodName  = "Standard application"
	DefaultProjectArea = 1000
	DefaultLaborRate   = 50
)

// Config represents the application configuration stored in .sopcalc.yml
type Config struct {
	AreaUnit          AreaUnit `yaml:"areaUnit"`
	Currency          string   `yaml:"currency"`
	DefaultMethodName string   `yaml:"defaultMethodName,omitempty"`
	DefaultMethodRate float64  `yaml:"defaultMethodRate,omitempty"`
	ProjectArea       float64  `yaml:"projectArea,omitempty"`
	LaborRate         float64  `yaml:"laborRate,omitempty"`
}

// AreaUnit represents the area unit configuration
type AreaUnit struct {
	Label   string `yaml:"label"`
	Acronym string `yaml:"acronym"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		AreaUnit: AreaUnit{
			Label:   "square foot",
			Acronym: "SF",
		},
		Currency:          "$",
		DefaultMethodName: DefaultMethodName,
		DefaultMethodRate: DefaultMethodRate,
		ProjectArea:       DefaultProjectArea,
		LaborRate:         DefaultLaborRate,
	}
}

// GetDefaultMethodRate returns the configured default rate or the fallback
func (c *Config) GetDefaultMethodRate() float64 {
	if c.DefaultMethodRate <= 0 {
		return DefaultMethodRate
	}
	return c.DefaultMethodRate
}

// GetDefaultMethodName returns the configured default method name or the fallback
func (c *Config) GetDefaultMethodName() string {
	if c.DefaultMethodName == "" {
		return DefaultMethodName
	}
	return c.DefaultMethodName
}

// GetProjectArea returns the configured default project area or the fallback
func (c *Config) GetProjectArea() float64 {
	if c.ProjectArea <= 0 {
		return DefaultProjectArea
	}
	return c.ProjectArea
}

// GetLaborRate returns the configured default labor rate or the fallback
func (c *Config) GetLaborRate() float64 {
	if c.LaborRate <= 0 {
		return DefaultLaborRate
	}
	return c.LaborRate
}
