package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Files struct {
		// Directory holding the membership workbooks exported from the
		// association's spreadsheets.
		Dir string `envconfig:"BA_FILES_DIR" required:"true"`
		// OutputDir receives the generated card, letter and batch files.
		OutputDir string `envconfig:"BA_OUTPUT_DIR" default:"."`
	}

	Renewal struct {
		// AdvanceMonths widens the due check to renewals falling within the
		// next N months. The match is broader than wanted: it picks up anyone
		// who could possibly renew in the window, not only members who held a
		// card during it. Kept for parity with the old runs; leave at 0.
		AdvanceMonths int `envconfig:"BA_ADVANCE_MONTHS" default:"0"`
		// IncludeAnticipatory issues cards to members whose balance does not
		// cover the fee, flagging the issuance instead of skipping it.
		IncludeAnticipatory bool `envconfig:"BA_INCLUDE_ANTICIPATORY" default:"false"`
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Renewal.AdvanceMonths < 0 {
		return nil, fmt.Errorf("BA_ADVANCE_MONTHS must not be negative, got %d", cfg.Renewal.AdvanceMonths)
	}

	return &cfg, nil
}
