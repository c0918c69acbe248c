package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/matchday/internal/smoke"
	"github.com/okian/matchday/pkg/logger"
)

const (
	defaultTimeout  = 10 * time.Second
	defaultMaxScore = 7
	runTimeout      = 2 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		maxScore  = flag.Int("max-score", defaultMaxScore, "Inclusive score bound the service enforces")
		logFormat = flag.String("log-format", "text", "Log format: text or json")
		verbose   = flag.Bool("verbose", false, "Log every request")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	log, err := smoke.SetupLogging(*logFormat, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := &smoke.Config{
		BaseURL:  *baseURL,
		Timeout:  *timeout,
		MaxScore: *maxScore,
		Verbose:  *verbose,
	}

	report, err := smoke.Run(ctx, cfg, log)
	smoke.PrintReport(os.Stdout, report, err)
	if err != nil {
		log.Error(ctx, "smoke run failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
