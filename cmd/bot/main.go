package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"GroveKeeper/internal/config"
	"GroveKeeper/internal/engine"
	"GroveKeeper/internal/notifier"
	"GroveKeeper/internal/recorder"
	"GroveKeeper/internal/scheduler"
	"GroveKeeper/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] GroveKeeper starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	cfgStore := config.NewStore(cfgPath, cfg)

	// Init participant store
	fs := store.New(cfg.Storage.DataFile)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// The chat-platform integration plugs in here; without one, events
	// land in the process log.
	sink := notifier.NewLogSink()

	// Init engine
	eng, err := engine.New(cfgStore, fs, rec, sink)
	if err != nil {
		log.Fatalf("[FATAL] init engine: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, cfgStore)
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	log.Println("[INFO] GroveKeeper is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] GroveKeeper stopped")
}
