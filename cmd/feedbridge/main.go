package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"github.com/redis/go-redis/v9"

	"github.com/capawawa/growmies-nj-bot-sub000/pkg/classify"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/config"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/dedup"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/dispatch"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/feed"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/processor"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/repository"
	"github.com/capawawa/growmies-nj-bot-sub000/pkg/webhook"
	"github.com/capawawa/growmies-nj-bot-sub000/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] server failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all pipeline components and starts the HTTP server
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLog(opts.Debug, opts.NoColor, cfg.GetWebhookSecret(), cfg.Dedup.Redis.Password, cfg.Pull.AdminToken)
	log.Printf("[INFO] starting feedbridge version %s", revision)

	if cfg.GetWebhookSecret() == "" {
		log.Printf("[WARN] webhook secret not set, all webhook deliveries will be rejected")
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	guard, err := makeGuard(cfg, repos)
	if err != nil {
		return fmt.Errorf("failed to init dedup guard: %w", err)
	}

	lexicon, err := classify.LoadLexicon(cfg.Classifier.LexiconFile)
	if err != nil {
		return fmt.Errorf("failed to load lexicon: %w", err)
	}
	classifier := classify.New(lexicon, classify.Config{
		TermWeight: cfg.Classifier.TermWeight,
		Threshold:  cfg.Classifier.Threshold,
	})

	normalizer := feed.NewNormalizer(cfg.Normalize.Provider, cfg.Normalize.TitleLimit)
	dispatcher := dispatch.NewDiscord(cfg.Dispatch.WebhookURL, cfg.Dispatch.Timeout)

	proc := processor.New(processor.Config{
		Classifier:       NewClassifierAdapter(classifier),
		Guard:            guard,
		Dispatcher:       dispatcher,
		Recorder:         repos.Post,
		AllowAgeGated:    cfg.Dispatch.AgeRestrictedChannel,
		FilterConfidence: cfg.Classifier.FilterConfidence,
	})

	pipeline := server.Pipeline{
		Verifier:   webhook.NewVerifier(cfg.GetWebhookSecret()),
		Limiter:    webhook.NewLimiter(cfg.Webhook.RateLimit.Window, cfg.Webhook.RateLimit.MaxRequests),
		Normalizer: normalizer,
		Processor:  proc,
		Stats:      repos.Post,
		AdminToken: cfg.Pull.AdminToken,
	}

	if len(cfg.Pull.Feeds) > 0 {
		fetcher := feed.NewFetcher(cfg.Pull.Timeout, cfg.Pull.UserAgent)
		pipeline.Puller = feed.NewPuller(fetcher, normalizer, proc, cfg.Pull.Feeds, cfg.Pull.MaxConcurrent)
	}

	srv := server.New(cfg, pipeline, revision, opts.Debug)
	return srv.Run(ctx)
}

// makeGuard picks the dedup backing store per configuration
func makeGuard(cfg *config.Config, repos *repository.Repositories) (processor.DedupGuard, error) {
	switch cfg.Dedup.Backend {
	case "sqlite":
		return repos.Post, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Dedup.Redis.Addr,
			Password: cfg.Dedup.Redis.Password,
			DB:       cfg.Dedup.Redis.DB,
		})
		return dedup.NewRedisGuard(rdb, cfg.Dedup.TTL), nil
	case "memory":
		log.Printf("[WARN] in-memory dedup does not survive restarts, redelivered items may repost")
		return dedup.NewMemoryGuard(), nil
	default:
		return nil, fmt.Errorf("unknown dedup backend %q", cfg.Dedup.Backend)
	}
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}

	for _, s := range secs {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
