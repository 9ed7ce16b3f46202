package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// RentEstimation configures the layered rent estimation chain.
type RentEstimation struct {
	// StrategyOrder is evaluated front to back; the first strategy that
	// produces a value wins. Note rent_to_price succeeds whenever price is
	// known, so anything listed after it is only reached for zero-price rows.
	StrategyOrder     []string           `yaml:"strategy_order"`
	ManualOverrides   map[string]float64 `yaml:"manual_overrides"`
	RuleOfThumbPerBed map[string]float64 `yaml:"rule_of_thumb_per_bed"`
	RentToPriceRatio  float64            `yaml:"rent_to_price_ratio"`
}

// Underwriting holds the financing and operating assumptions. Rates are
// decimals (0.07 = 7%), amounts are in the listing's currency.
type Underwriting struct {
	PurchaseCostsPct      float64 `yaml:"purchase_costs_pct"`
	DownPaymentPct        float64 `yaml:"down_payment_pct"`
	PMIAppliesUnderDPPct  float64 `yaml:"pmi_applies_under_dp_pct"`
	PMIMonthlyPctOfLoan   float64 `yaml:"pmi_monthly_pct_of_loan"`
	InterestRateAnnual    float64 `yaml:"interest_rate_annual"`
	LoanTermYears         int     `yaml:"loan_term_years"`
	AnnualPropertyTaxRate float64 `yaml:"annual_property_tax_rate"`
	AnnualInsuranceRate   float64 `yaml:"annual_insurance_rate"`
	MonthlyHOA            float64 `yaml:"monthly_hoa"`
	VacancyRate           float64 `yaml:"vacancy_rate"`
	MaintenanceRate       float64 `yaml:"maintenance_rate"`
	ManagementRate        float64 `yaml:"management_rate"`
	CapexRate             float64 `yaml:"capex_rate"`
	RehabBudget           float64 `yaml:"rehab_budget"`
}

// BuyBox holds the hard screening criteria. Zero/empty values mean the
// criterion is not applied, except MaxPrice which is required.
type BuyBox struct {
	Markets       []string `yaml:"markets"`
	MaxPrice      float64  `yaml:"max_price"`
	MinBeds       int      `yaml:"min_beds"`
	MinSqft       int      `yaml:"min_sqft"`
	MinLotSqft    int      `yaml:"min_lot_sqft"`
	MaxYearBuilt  int      `yaml:"max_year_built"`
	PropertyTypes []string `yaml:"property_types"`
}

// ManualCheckRules controls the soft "needs human review" heuristics.
type ManualCheckRules struct {
	NearCapTargetBps        float64 `yaml:"near_cap_target_bps"`
	NearCoCTargetBps        float64 `yaml:"near_coc_target_bps"`
	RentConfidenceThreshold float64 `yaml:"rent_confidence_threshold"`
	MissingFieldsTrigger    *bool   `yaml:"missing_fields_trigger"`
}

// Targets are the acceptance floors a deal must clear.
type Targets struct {
	MinCapRate    float64 `yaml:"min_cap_rate"`
	MinCashOnCash float64 `yaml:"min_cash_on_cash"`
	MinDSCR       float64 `yaml:"min_dscr"`
}

// Outputs controls result size and evaluation concurrency.
type Outputs struct {
	TopN    int `yaml:"top_n"`
	Workers int `yaml:"workers"`
}

// Database selects an optional run-history sink. Both empty means no
// recording.
type Database struct {
	SQLitePath  string `yaml:"sqlite_path"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// Schedule enables watch mode: a non-empty cron spec re-runs the batch on
// that schedule.
type Schedule struct {
	Cron string `yaml:"cron"`
}

// Config holds all application configuration. Read once per run, read-only
// afterwards.
type Config struct {
	RentEstimation   RentEstimation   `yaml:"rent_estimation"`
	Underwriting     Underwriting     `yaml:"underwriting"`
	BuyBox           BuyBox           `yaml:"buy_box"`
	ManualCheckRules ManualCheckRules `yaml:"manual_check_rules"`
	Targets          Targets          `yaml:"targets"`
	Outputs          Outputs          `yaml:"outputs"`
	Database         Database         `yaml:"database"`
	Schedule         Schedule         `yaml:"schedule"`
}

// MissingFieldsEnabled reports whether the missing-fields manual check runs.
// Defaults to true when the key is absent.
func (m *ManualCheckRules) MissingFieldsEnabled() bool {
	return m.MissingFieldsTrigger == nil || *m.MissingFieldsTrigger
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Database.PostgresDSN = v
	}
	if v := os.Getenv("CRON_SPEC"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Outputs.TopN = n
		}
	}
	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Outputs.Workers = n
		}
	}

	// Defaults
	if cfg.RentEstimation.RentToPriceRatio == 0 {
		cfg.RentEstimation.RentToPriceRatio = 0.006
	}
	if cfg.Underwriting.PMIAppliesUnderDPPct == 0 {
		cfg.Underwriting.PMIAppliesUnderDPPct = 0.20
	}
	if cfg.Underwriting.PMIMonthlyPctOfLoan == 0 {
		cfg.Underwriting.PMIMonthlyPctOfLoan = 0.0004
	}
	if cfg.Outputs.TopN == 0 {
		cfg.Outputs.TopN = 20
	}
	if cfg.Outputs.Workers == 0 {
		cfg.Outputs.Workers = 1
	}

	return cfg, nil
}

var knownStrategies = map[string]bool{
	"manual_override": true,
	"rule_of_thumb":   true,
	"rent_to_price":   true,
}

// Validate checks the loaded configuration eagerly, before any listing is
// processed. A failure here aborts the run.
func (c *Config) Validate() error {
	if len(c.RentEstimation.StrategyOrder) == 0 {
		return fmt.Errorf("rent_estimation.strategy_order is required")
	}
	for _, s := range c.RentEstimation.StrategyOrder {
		if !knownStrategies[s] {
			return fmt.Errorf("rent_estimation.strategy_order: unknown strategy %q", s)
		}
	}
	if c.Underwriting.DownPaymentPct < 0 || c.Underwriting.DownPaymentPct > 1 {
		return fmt.Errorf("underwriting.down_payment_pct must be in [0,1], got %v", c.Underwriting.DownPaymentPct)
	}
	if c.Underwriting.LoanTermYears <= 0 {
		return fmt.Errorf("underwriting.loan_term_years must be positive")
	}
	if c.Underwriting.InterestRateAnnual < 0 {
		return fmt.Errorf("underwriting.interest_rate_annual must not be negative")
	}
	if c.BuyBox.MaxPrice <= 0 {
		return fmt.Errorf("buy_box.max_price is required")
	}
	if c.ManualCheckRules.NearCapTargetBps < 0 || c.ManualCheckRules.NearCoCTargetBps < 0 {
		return fmt.Errorf("manual_check_rules near-target bands must not be negative")
	}
	if c.Outputs.TopN <= 0 {
		return fmt.Errorf("outputs.top_n must be positive")
	}
	if c.Outputs.Workers <= 0 {
		return fmt.Errorf("outputs.workers must be positive")
	}
	return nil
}
