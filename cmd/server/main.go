package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/angelcm/onboard-dash-go/internal/aggregate"
	"github.com/angelcm/onboard-dash-go/internal/config"
	"github.com/angelcm/onboard-dash-go/internal/dataset"
	"github.com/angelcm/onboard-dash-go/internal/filter"
	"github.com/angelcm/onboard-dash-go/internal/httpx"
	"github.com/angelcm/onboard-dash-go/internal/session"
	"github.com/angelcm/onboard-dash-go/internal/store"
	"github.com/angelcm/onboard-dash-go/internal/utils"
)

func main() {
	cfg := config.FromEnv()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	records, err := dataset.Load(cfg.DataPath)
	if err != nil {
		logger.Error("dataset load failed", slog.String("path", cfg.DataPath), slog.String("err", err.Error()))
		os.Exit(1)
	}
	utils.RecordsLoaded.Set(float64(len(records)))
	logger.Info("dataset loaded", slog.String("path", cfg.DataPath), slog.Int("records", len(records)))

	st := store.NewRecordStore(records)
	svc := aggregate.NewService(st)
	sessions := session.NewManager(filter.Defaults(st))

	r := httpx.NewRouter(logger, st, svc, sessions)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", slog.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}
