package main

import (
	"testing"

	"github.com/masterschool-weiterbildung/bestbuy/internal/app"
)

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestReadConfig_Defaults(t *testing.T) {
	cfg := readConfig(mapLookup(nil))

	if cfg != app.DefaultConfig() {
		t.Fatalf("expected default config, got %#v", cfg)
	}
}

func TestReadConfig_MetricsAddrOverride(t *testing.T) {
	cfg := readConfig(mapLookup(map[string]string{
		envMetricsAddr: "localhost:9090",
	}))

	if cfg.MetricsAddr != "localhost:9090" {
		t.Fatalf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
}

func TestReadConfig_EmptyValueKeepsDefault(t *testing.T) {
	cfg := readConfig(mapLookup(map[string]string{
		envMetricsAddr: "",
	}))

	if cfg.MetricsAddr != app.DefaultConfig().MetricsAddr {
		t.Fatal("expected empty value to keep default")
	}
}
