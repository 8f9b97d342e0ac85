// Package app собирает магазин: каталог по умолчанию, акции, метрики,
// текстовое меню и опциональный служебный HTTP-листенер с /metrics и /healthz.
package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/masterschool-weiterbildung/bestbuy/internal/cli"
	"github.com/masterschool-weiterbildung/bestbuy/internal/domain"
	"github.com/masterschool-weiterbildung/bestbuy/internal/health"
	"github.com/masterschool-weiterbildung/bestbuy/internal/metrics"
	"github.com/masterschool-weiterbildung/bestbuy/internal/store"
	"github.com/masterschool-weiterbildung/bestbuy/internal/version"
)

// errNoActiveProducts сообщает health-проверке, что каталог пуст или
// полностью распродан.
var errNoActiveProducts = errors.New("no active products in catalog")

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// MetricsAddr — адрес служебного HTTP-листенера с /metrics и /healthz.
	// Пустая строка отключает его.
	MetricsAddr string
}

// DefaultConfig возвращает настройки по умолчанию: метрики выключены,
// магазин работает как чисто консольная программа.
func DefaultConfig() Config {
	return Config{MetricsAddr: ""}
}

// Run запускает магазин и блокируется до выхода из меню или отмены контекста.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	logger := log.WithField("component", "app")
	logger.WithField("version", version.String()).Info("starting storefront")

	var recorder store.MetricsRecorder
	if cfg.MetricsAddr != "" {
		recorder = metrics.NewStoreMetrics()
	}

	products, err := defaultCatalog()
	if err != nil {
		return err
	}
	bestBuy, err := store.NewWithMetrics(products, recorder, log.WithField("component", "store"))
	if err != nil {
		return err
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		healthHandler := health.NewHandler(version.String())
		healthHandler.RegisterChecker("catalog", health.NewSimpleChecker("catalog", func() error {
			if len(bestBuy.ActiveProducts()) == 0 {
				return errNoActiveProducts
			}
			return nil
		}))

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.Handle("/healthz", healthHandler)
		metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

		go func() {
			logger.WithField("addr", cfg.MetricsAddr).Info("metrics listener started")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.WithError(err).Warn("metrics listener failed")
			}
		}()
	}

	menu := cli.New(bestBuy, in, out, log.WithField("component", "cli"))
	runErr := menu.Run(ctx)

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("metrics listener shutdown failed")
		}
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// defaultCatalog воспроизводит стартовый ассортимент магазина.
func defaultCatalog() ([]*domain.Product, error) {
	macbook, err := domain.NewProduct("MacBook Air M2", 1450, 100)
	if err != nil {
		return nil, err
	}
	earbuds, err := domain.NewProduct("Bose QuietComfort Earbuds", 250, 500)
	if err != nil {
		return nil, err
	}
	pixel, err := domain.NewProduct("Google Pixel 7", 500, 250)
	if err != nil {
		return nil, err
	}
	license, err := domain.NewNonStockedProduct("Windows License", 125)
	if err != nil {
		return nil, err
	}
	shipping, err := domain.NewLimitedProduct("Shipping", 10, 250, 1)
	if err != nil {
		return nil, err
	}

	secondHalfPrice, err := domain.NewSecondHalfPrice("Second Half price!")
	if err != nil {
		return nil, err
	}
	thirdOneFree, err := domain.NewThirdOneFree("Third One Free!")
	if err != nil {
		return nil, err
	}
	thirtyPercent, err := domain.NewPercentOff("30% off!", 30)
	if err != nil {
		return nil, err
	}

	macbook.SetPromotion(secondHalfPrice)
	earbuds.SetPromotion(thirdOneFree)
	license.SetPromotion(thirtyPercent)

	return []*domain.Product{macbook, earbuds, pixel, license, shipping}, nil
}
