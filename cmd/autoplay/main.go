package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/quarto/automatic"
	"github.com/domino14/quarto/config"
)

func main() {
	cfg := config.New()
	cfg.Load()

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	log.Logger = logger
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if fn := cfg.GetString(config.ConfigAutoplayAnalyze); fn != "" {
		report, err := automatic.AnalyzeLogFile(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("could not analyze log file")
		}
		fmt.Print(report)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := automatic.NewGameRunner(cfg.GetInt(config.ConfigAutoplayMatches),
		cfg.GetInt(config.ConfigAutoplayThreads))
	runner.SetSeed(cfg.GetUint64(config.ConfigSeed))
	runner.SetWinThreshold(cfg.GetInt(config.ConfigWinThreshold))
	runner.SetNames("p1", "p2")

	if fn := cfg.GetString(config.ConfigAutoplayLogfile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create log file")
		}
		defer f.Close()
		runner.SetLogStream(f)
	}

	tstart := time.Now()
	sum, err := runner.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("autoplay failed")
	}
	log.Info().Msgf("time taken: %v", time.Since(tstart))
	fmt.Print(sum.String())
}
