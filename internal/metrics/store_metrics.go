package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics содержит метрики работы магазина.
type StoreMetrics struct {
	// Счётчики заказов
	ordersCommitted    prometheus.Counter
	validationFailures *prometheus.CounterVec

	// Накопительные показатели продаж
	unitsSold prometheus.Counter
	revenue   prometheus.Counter

	// Gauge текущего суммарного остатка каталога
	inventoryUnits prometheus.Gauge
}

// NewStoreMetrics создаёт метрики магазина в default-реестре prometheus.
func NewStoreMetrics() *StoreMetrics {
	return newStoreMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newStoreMetricsWithRegisterer(registerer prometheus.Registerer) *StoreMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StoreMetrics{
		ordersCommitted: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bestbuy_orders_committed_total",
			Help: "Total number of orders committed",
		}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "bestbuy_order_validation_failures_total",
			Help: "Total number of order validation failures by reason",
		}, []string{"reason"}),
		unitsSold: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bestbuy_units_sold_total",
			Help: "Total number of product units sold",
		}),
		revenue: registerCounter(registerer, prometheus.CounterOpts{
			Name: "bestbuy_revenue_total",
			Help: "Total revenue of committed orders",
		}),
		inventoryUnits: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "bestbuy_inventory_units",
			Help: "Current total quantity across the catalog",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

// RecordOrderCommitted фиксирует оформленный заказ, его выручку и число проданных единиц.
func (m *StoreMetrics) RecordOrderCommitted(total float64, units int) {
	m.ordersCommitted.Inc()
	m.revenue.Add(total)
	m.unitsSold.Add(float64(units))
}

// RecordValidationFailure увеличивает счётчик отклонённых заказов по причине reason.
func (m *StoreMetrics) RecordValidationFailure(reason string) {
	m.validationFailures.WithLabelValues(reason).Inc()
}

// RecordInventoryUnits обновляет gauge суммарного остатка каталога.
func (m *StoreMetrics) RecordInventoryUnits(units int) {
	m.inventoryUnits.Set(float64(units))
}
