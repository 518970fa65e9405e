package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"leadfilter/adapter/in/ingest"
	"leadfilter/adapter/in/worker"
	"leadfilter/adapter/out/report"
	"leadfilter/config"
	"leadfilter/core/service/classification"
	"leadfilter/pkg/logger"
)

func main() {
	// Load .env file if exists (for local development)
	_ = godotenv.Load()

	mode := flag.String("mode", "classify", "Run mode: classify, validate")
	marketPath := flag.String("market", "", "Market configuration file (overrides MARKET_CONFIG)")
	inputPath := flag.String("input", "", "Input CSV file (overrides INPUT_PATH)")
	reportDir := flag.String("out", "", "Report output directory (overrides REPORT_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("failed to load config")
	}
	if *marketPath != "" {
		cfg.MarketConfigPath = *marketPath
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *reportDir != "" {
		cfg.ReportDir = *reportDir
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Service: "leadfilter",
		Console: cfg.IsDevelopment(),
	})

	switch *mode {
	case "classify":
		runClassify(cfg, log)
	case "validate":
		runValidate(cfg, log)
	default:
		log.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}

// runValidate loads and validates the market configuration, then exits.
func runValidate(cfg *config.Config, log zerolog.Logger) {
	market, err := config.LoadMarketConfig(cfg.MarketConfigPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.MarketConfigPath).Msg("market configuration invalid")
	}
	log.Info().
		Str("market", market.Market).
		Float64("weight_sum", market.Weights.Sum()).
		Int("suspicious_patterns", len(market.HardExclusions.SuspiciousPatterns)).
		Msg("market configuration valid")
}

// runClassify executes one full batch: load config, load records, classify
// in parallel, write reports.
func runClassify(cfg *config.Config, log zerolog.Logger) {
	if cfg.InputPath == "" {
		log.Fatal().Msg("no input file (set INPUT_PATH or -input)")
	}

	market, err := config.LoadMarketConfig(cfg.MarketConfigPath, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.MarketConfigPath).Msg("market configuration invalid")
	}

	records, err := ingest.NewCSVRecordSource(log).Load(cfg.InputPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.InputPath).Msg("cannot load input records")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline := classification.NewPipeline(log)
	runner := worker.NewBatchRunner(pipeline, cfg.WorkerCount, log)

	result, err := runner.Run(ctx, records, market)
	if err != nil {
		log.Fatal().Err(err).Msg("batch classification failed")
	}

	writer := report.NewFileReportWriter(cfg.ReportDir, log)
	if err := writer.Write(result); err != nil {
		log.Fatal().Err(err).Msg("cannot write reports")
	}

	if result.Summary.Skipped > 0 {
		log.Warn().Int("skipped", result.Summary.Skipped).Msg("some records were skipped; see summary.json")
	}
}
