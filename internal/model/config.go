package model

// Config holds all tunables for a pipeline run. Base rates and validation
// thresholds are period-specific study constants, not universal truths, so
// everything here is overridable via config file, KDPIPE_* env vars or flags.
type Config struct {
	AnalysisYear int               `yaml:"analysis_year" mapstructure:"analysis_year"`
	BaseRates    BaseRateConfig    `yaml:"base_rates" mapstructure:"base_rates"`
	Calculation  CalculationConfig `yaml:"calculation" mapstructure:"calculation"`
	Validation   ValidationConfig  `yaml:"validation" mapstructure:"validation"`
	Input        InputConfig       `yaml:"input" mapstructure:"input"`
	Concurrency  ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache        CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output       OutputConfig      `yaml:"output" mapstructure:"output"`
}

// BaseRateConfig maps indexer names to their annual base rate in percent
// for the analysis year. PRE_FIXADO carries no base on purpose: the
// extracted spread already is the whole rate.
type BaseRateConfig map[string]float64

// CalculationConfig controls how classified rates combine into Kd
type CalculationConfig struct {
	// DefaultPeriod substitutes for descriptions with no a.a./a.m. marker.
	// The original data overwhelmingly quotes annual rates, but this is an
	// assumption, so it stays explicit and overridable.
	DefaultPeriod string `yaml:"default_period" mapstructure:"default_period"`
}

// ValidationConfig is the acceptance band and watch thresholds for Kd,
// in annual percentage points
type ValidationConfig struct {
	MinKd       float64 `yaml:"min_kd" mapstructure:"min_kd"`             // lower band bound (closed)
	MaxKd       float64 `yaml:"max_kd" mapstructure:"max_kd"`             // upper band bound (closed)
	ExtremeHigh float64 `yaml:"extreme_high" mapstructure:"extreme_high"` // flag when Kd > this
	ExtremeLow  float64 `yaml:"extreme_low" mapstructure:"extreme_low"`   // flag when Kd < this
}

// InputConfig names the CSV columns carrying each field
type InputConfig struct {
	CompanyColumn string `yaml:"company_column" mapstructure:"company_column"`
	RateColumn    string `yaml:"rate_column" mapstructure:"rate_column"`
	AmountColumn  string `yaml:"amount_column" mapstructure:"amount_column"`
}

// ConcurrencyConfig controls batch fan-out
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls classification memoization
type CacheConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the configuration used by the 2024 Brazilian
// study: average reference-rate levels for that year and the empirically
// derived acceptance band.
func DefaultConfig() *Config {
	return &Config{
		AnalysisYear: 2024,
		BaseRates: BaseRateConfig{
			string(IndexerCDI):   13.65,
			string(IndexerDI):    13.65,
			string(IndexerTLP):   6.50,
			string(IndexerTJLP):  6.50,
			string(IndexerIPCA):  4.62,
			string(IndexerTR):    0.01,
			string(IndexerSELIC): 10.50,
			string(IndexerSOFR):  5.00,
			string(IndexerLIBOR): 5.50,
		},
		Calculation: CalculationConfig{
			DefaultPeriod: string(PeriodAnnual),
		},
		Validation: ValidationConfig{
			MinKd:       0.0,
			MaxKd:       50.0,
			ExtremeHigh: 30.0,
			ExtremeLow:  1.0,
		},
		Input: InputConfig{
			CompanyColumn: "Empresa",
			RateColumn:    "Indexador",
			AmountColumn:  "Valor_Consolidado_2024",
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
