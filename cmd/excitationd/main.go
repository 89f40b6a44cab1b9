// cmd/excitationd/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/excitation-controller/internal/config"
	"github.com/tamzrod/excitation-controller/internal/logging"
	"github.com/tamzrod/excitation-controller/internal/poller"
	"github.com/tamzrod/excitation-controller/internal/runner"
	"github.com/tamzrod/excitation-controller/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: excitationd <config.yaml>")
		os.Exit(2)
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config validation failed: %v\n", err)
		os.Exit(1)
	}

	config.Normalize(cfg)

	log, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithField("channels", len(cfg.Controller.Channels)).Info("excitationd starting")

	var wg sync.WaitGroup
	var closers []func() error

	// --------------------
	// Build per-channel pipelines
	// --------------------

	for _, ch := range cfg.Controller.Channels {
		chLog := log.WithFields(logrus.Fields{
			"channel": ch.ID,
			"path":    ch.ThresholdFile,
		})
		trace, closeTrace := logging.ModbusTrace(log, ch.ID)

		// ---- poller ----
		p, closePoller, err := poller.Build(ch, trace)
		if err != nil {
			log.WithError(err).WithField("channel", ch.ID).Fatal("poller build failed")
		}
		closers = append(closers, closePoller)

		// ---- writer plan ----
		plan, err := writer.BuildPlan(ch)
		if err != nil {
			log.WithError(err).WithField("channel", ch.ID).Fatal("writer plan failed")
		}

		// ---- writer clients (TARGETS + STATUS) ----
		clients, closeWriters, err := writer.BuildClients(plan, trace)
		if err != nil {
			log.WithError(err).WithField("channel", ch.ID).Fatal("writer clients failed")
		}
		closers = append(closers, closeWriters, closeTrace)

		rc := runner.Channel{
			ID:            ch.ID,
			ThresholdFile: ch.ThresholdFile,
			Writer:        writer.New(plan, clients.Modbus, clients.Instruments),
			Log:           chLog,
		}

		// Status writer (optional per channel)
		if sw, enabled := writer.NewStatusWriter(plan, clients.Modbus); enabled {
			rc.Status = sw
		}

		// ---- channel between poller and runner ----
		out := make(chan poller.Reading)

		wg.Add(2)
		go func() {
			defer wg.Done()
			runner.New(rc).Run(ctx, out)
		}()
		go func() {
			defer wg.Done()
			p.Run(ctx, out)
		}()
	}

	// --------------------
	// Block until signalled
	// --------------------

	<-ctx.Done()
	log.Info("excitationd stopping")
	wg.Wait()

	for _, fn := range closers {
		if err := fn(); err != nil {
			log.WithError(err).Warn("close failed")
		}
	}
}
