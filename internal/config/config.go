// Package config loads the exchange's configuration: fees, leverage,
// starting balance, contract type, and the max number of resting orders.
// Loading shape (viper, YAML file + env override) follows the same pattern
// used to load trading-bot config, trimmed down to the handful of options
// a simulated exchange needs.
package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/Toskosz/lfest/internal/errs"
	"github.com/Toskosz/lfest/pkg/currency"
)

// Config is the exchange's full configuration.
type Config struct {
	FeeMaker         decimal.Decimal
	FeeTaker         decimal.Decimal
	StartingBalance  decimal.Decimal
	Leverage         decimal.Decimal
	FuturesType      currency.FuturesType
	MaxNumOpenOrders int
}

// Load reads a YAML config file at path, applying LFEST_-prefixed
// environment variable overrides (e.g. LFEST_LEVERAGE=5).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("LFEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	feeMaker, err := decimal.NewFromString(v.GetString("fee_maker"))
	if err != nil {
		return Config{}, fmt.Errorf("parse fee_maker: %w", err)
	}
	feeTaker, err := decimal.NewFromString(v.GetString("fee_taker"))
	if err != nil {
		return Config{}, fmt.Errorf("parse fee_taker: %w", err)
	}
	startingBalance, err := decimal.NewFromString(v.GetString("starting_balance"))
	if err != nil {
		return Config{}, fmt.Errorf("parse starting_balance: %w", err)
	}
	leverage, err := decimal.NewFromString(v.GetString("leverage"))
	if err != nil {
		return Config{}, fmt.Errorf("parse leverage: %w", err)
	}
	futuresType, err := currency.ParseFuturesType(v.GetString("futures_type"))
	if err != nil {
		return Config{}, fmt.Errorf("parse futures_type: %w", err)
	}

	cfg := Config{
		FeeMaker:         feeMaker,
		FeeTaker:         feeTaker,
		StartingBalance:  startingBalance,
		Leverage:         leverage,
		FuturesType:      futuresType,
		MaxNumOpenOrders: v.GetInt("max_num_open_orders"),
	}
	return cfg, cfg.Validate()
}

// New builds a Config directly, without reading a file, validating it
// before returning. Handy for tests and programmatic callers.
func New(feeMaker, feeTaker, startingBalance, leverage decimal.Decimal, ft currency.FuturesType, maxNumOpenOrders int) (Config, error) {
	cfg := Config{
		FeeMaker:         feeMaker,
		FeeTaker:         feeTaker,
		StartingBalance:  startingBalance,
		Leverage:         leverage,
		FuturesType:      ft,
		MaxNumOpenOrders: maxNumOpenOrders,
	}
	return cfg, cfg.Validate()
}

// Validate checks the configured values are usable.
func (c Config) Validate() error {
	if c.Leverage.LessThan(decimal.NewFromInt(1)) {
		return errs.ErrConfigWrongLeverage
	}
	if !c.StartingBalance.IsPositive() {
		return errs.ErrConfigWrongStartingBalance
	}
	if c.MaxNumOpenOrders <= 0 {
		return errs.ErrInvalidMaxNumOpenOrders
	}
	return nil
}
