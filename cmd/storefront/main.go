package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/masterschool-weiterbildung/bestbuy/internal/app"
)

const (
	envMetricsAddr = "STOREFRONT_METRICS_ADDR"
	envLogLevel    = "STOREFRONT_LOG_LEVEL"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для магазина.
func setupLogger(lookup envLookup) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	if raw, ok := lookup(envLogLevel); ok {
		level, err := log.ParseLevel(raw)
		if err != nil {
			log.WithField("value", raw).Warn("invalid log level, keeping info")
			return
		}
		log.SetLevel(level)
	}
}

// readConfig формирует конфигурацию, позволяя переопределить адрес метрик
// через переменную окружения.
func readConfig(lookup envLookup) app.Config {
	cfg := app.DefaultConfig()
	if v, ok := lookup(envMetricsAddr); ok && v != "" {
		cfg.MetricsAddr = v
	}
	return cfg
}

func main() {
	setupLogger(os.LookupEnv)
	cfg := readConfig(os.LookupEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithField("metrics_addr", cfg.MetricsAddr).Info("запускаем магазин")

	if err := app.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("магазин остановлен")
}
