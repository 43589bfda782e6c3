package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"RoundSentinel/internal/config"
	"RoundSentinel/internal/metrics"
	"RoundSentinel/internal/notifier"
	"RoundSentinel/internal/recorder"
	"RoundSentinel/internal/scheduler"
	"RoundSentinel/internal/session"
	"RoundSentinel/internal/tracker"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive tracking session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		return run(cfg)
	},
}

func run(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess, err := session.New(cfg.Indicators)
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	logger := log.WithField("session_id", sess.ID())
	logger.Info("RoundSentinel starting...")

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.WithError(err).Warn("init sqlite recorder failed, using noop")
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}
	defer rec.Close()

	m := metrics.NewMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				logger.WithError(err).Error("metrics server")
			}
		}()
	}

	var svc *tracker.Service
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		svc = tracker.NewService(ctx, sess, rec, m, tn)
		go tn.StartPolling(ctx, svc.HandleCommand)
		logger.Info("Telegram polling started")
	} else {
		svc = tracker.NewService(ctx, sess, rec, m, nil)
		logger.Info("Telegram not configured, alerts disabled")
	}
	defer svc.Wait()

	sched := scheduler.NewScheduler(svc)
	if err := sched.RegisterAll(cfg.Schedule.SnapshotCron); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		newREPL(svc, os.Stdin, os.Stdout).Run()
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping...")
	}
	sched.RunSnapshotNow()
	logger.Info("RoundSentinel stopped")
	return nil
}
