// Command backtest replays a CSV feed of market snapshots through a single
// simulated exchange and prints the resulting account state.
//
//	backtest -config configs/config.yaml -data candles.csv
//
// The CSV has one row per tick: bid,ask,high,low,ts
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"

	"github.com/Toskosz/lfest/internal/config"
	"github.com/Toskosz/lfest/internal/exchange"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "path to exchange config YAML")
	dataPath := flag.String("data", "", "path to CSV market data feed (bid,ask,high,low,ts)")
	logLevel := flag.String("log-level", "info", "debug, info, warn, or error")
	flag.Parse()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(*logLevel)})
	logger := slog.New(handler)

	if *dataPath == "" {
		logger.Error("missing required -data flag")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err, "path", *cfgPath)
		os.Exit(1)
	}

	x, err := exchange.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create exchange", "error", err)
		os.Exit(1)
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		logger.Error("failed to open data feed", "error", err, "path", *dataPath)
		os.Exit(1)
	}
	defer f.Close()

	ticks, liquidated, err := replay(x, f, logger)
	if err != nil {
		logger.Error("replay failed", "error", err)
		os.Exit(1)
	}

	acc := x.Account()
	logger.Info("backtest complete",
		"ticks", ticks,
		"liquidated", liquidated,
		"wallet_balance", acc.Margin().WalletBalance().String(),
		"position_size", acc.Position().Size().String(),
	)
	fmt.Printf("ticks=%d liquidated=%v wallet_balance=%s position_size=%s\n",
		ticks, liquidated, acc.Margin().WalletBalance(), acc.Position().Size())
}

func replay(x *exchange.Exchange, r io.Reader, logger *slog.Logger) (ticks int, liquidated bool, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 5

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return ticks, liquidated, readErr
		}

		bid, err := decimal.NewFromString(record[0])
		if err != nil {
			return ticks, liquidated, fmt.Errorf("row %d: parse bid: %w", ticks, err)
		}
		ask, err := decimal.NewFromString(record[1])
		if err != nil {
			return ticks, liquidated, fmt.Errorf("row %d: parse ask: %w", ticks, err)
		}
		high, err := decimal.NewFromString(record[2])
		if err != nil {
			return ticks, liquidated, fmt.Errorf("row %d: parse high: %w", ticks, err)
		}
		low, err := decimal.NewFromString(record[3])
		if err != nil {
			return ticks, liquidated, fmt.Errorf("row %d: parse low: %w", ticks, err)
		}
		var ts uint64
		if _, err := fmt.Sscanf(record[4], "%d", &ts); err != nil {
			return ticks, liquidated, fmt.Errorf("row %d: parse ts: %w", ticks, err)
		}

		executed, liq := x.UpdateState(bid, ask, high, low, ts)
		ticks++
		for _, o := range executed {
			logger.Debug("order executed", "id", o.ID(), "side", o.Side(), "qty", o.Quantity())
		}
		if liq {
			logger.Warn("account liquidated", "tick", ticks)
			liquidated = true
			break
		}
	}
	return ticks, liquidated, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
