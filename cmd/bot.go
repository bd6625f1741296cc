package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minchenkova509/telegram-bot/configs"
	"github.com/minchenkova509/telegram-bot/configs/loader/dotEnvLoader"
	"github.com/minchenkova509/telegram-bot/internal/delivery/telegram"
	"github.com/minchenkova509/telegram-bot/internal/repository/redisSessions"
	"github.com/minchenkova509/telegram-bot/internal/repository/requestRegistry"
	"github.com/minchenkova509/telegram-bot/internal/repository/sessionStore"
	"github.com/minchenkova509/telegram-bot/internal/repository/sheets"
	"github.com/minchenkova509/telegram-bot/internal/usecase"
	"github.com/minchenkova509/telegram-bot/pkg/logger"
	"github.com/minchenkova509/telegram-bot/pkg/prometheus"
)

func main() {

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	loader := dotEnvLoader.DotEnvLoader{}
	cfg := configs.MustLoad(loader)
	log := logger.NewLogger(cfg)

	prometheus.Init()
	http.Handle("/metrics", promhttp.Handler())
	go http.ListenAndServe(":8080", nil)
	log.Info("Starting prometheus at port 8080")

	var sessions usecase.SessionProvider
	if cfg.Bot.SessionStorage == "redis" {
		sessions = redisSessions.New(cfg)
	} else {
		sessions = sessionStore.NewStore()
	}
	registry := requestRegistry.NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var audit usecase.AuditSink
	if cfg.Sheets.SpreadsheetID != "" {
		sink, err := sheets.NewSink(ctx, cfg, log)
		if err != nil {
			log.Error("failed to create sheets sink:", "error", err)
			os.Exit(1)
		}
		audit = sink
	} else {
		log.Warn("SPREADSHEET_ID is not set, audit log disabled")
	}

	engine := usecase.NewEngine(sessions, registry, audit, cfg, log)

	bot, err := telegram.NewBot(cfg, engine, log)
	if err != nil {
		log.Error("failed to create bot:", "error", err)
		os.Exit(1)
	}
	log.Info("Starting bot")
	go bot.Run(ctx)
	<-done
	log.Info("Shutting down bot")
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	bot.Stop(stopCtx)
	log.Info("Service stopped")
}
