package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"DealScout/internal/config"
	"DealScout/internal/loader"
	"DealScout/internal/pipeline"
	"DealScout/internal/recorder"
	"DealScout/internal/report"
	"DealScout/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	cfgPath := flag.String("config", "configs/config.yaml", "path to YAML configuration")
	inputPath := flag.String("input", "", "listings file (.csv or .json array)")
	outPath := flag.String("out", "results.csv", "ranked results CSV path")
	flag.Parse()

	if v := os.Getenv("DEALSCOUT_CONFIG"); v != "" {
		*cfgPath = v
	}
	if *inputPath == "" {
		log.Fatal("[FATAL] -input is required")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init recorder
	rec := newRecorder(cfg)
	defer rec.Close()

	p := pipeline.New(cfg)

	runOnce := func() {
		evaluate(p, cfg, rec, *inputPath, *outPath)
	}

	if cfg.Schedule.Cron == "" {
		runOnce()
		return
	}

	// Watch mode: re-evaluate on the configured schedule.
	log.Printf("[INFO] watch mode, cron spec %q", cfg.Schedule.Cron)
	sched := scheduler.New()
	if err := sched.Register(cfg.Schedule.Cron, runOnce); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	runOnce()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] shutdown signal received, stopping...")
}

func newRecorder(cfg *config.Config) recorder.Recorder {
	switch {
	case cfg.Database.SQLitePath != "":
		r, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			return recorder.NewNoopRecorder()
		}
		return r
	case cfg.Database.PostgresDSN != "":
		r, err := recorder.NewPostgresRecorder(cfg.Database.PostgresDSN)
		if err != nil {
			log.Printf("[WARN] init postgres recorder failed, using noop: %v", err)
			return recorder.NewNoopRecorder()
		}
		return r
	default:
		return recorder.NewNoopRecorder()
	}
}

func evaluate(p *pipeline.Pipeline, cfg *config.Config, rec recorder.Recorder, inputPath, outPath string) {
	started := time.Now()

	listings, err := loader.Load(inputPath)
	if err != nil {
		log.Fatalf("[FATAL] load listings: %v", err)
	}
	if len(listings) == 0 {
		log.Println("[WARN] no listings in input, nothing to do")
		return
	}
	log.Printf("[INFO] evaluating %d listings (workers=%d)", len(listings), cfg.Outputs.Workers)

	ranked := p.Run(listings)
	top := pipeline.Top(ranked, cfg.Outputs.TopN)

	if err := report.WriteCSV(outPath, top); err != nil {
		log.Printf("[ERROR] write results: %v", err)
	} else {
		log.Printf("[INFO] wrote %d rows to %s", len(top), outPath)
	}

	log.Printf("[INFO] %s", report.Summary(ranked))
	report.WriteTable(os.Stdout, top)

	if err := rec.RecordRun(&recorder.Run{
		ID:           uuid.NewString(),
		StartedAt:    started,
		InputPath:    inputPath,
		ListingCount: len(listings),
	}, ranked); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}
