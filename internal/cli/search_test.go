package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/progsquare/internal/config"
	"github.com/agbru/progsquare/internal/progressive"
	"github.com/agbru/progsquare/internal/testutil"
	"github.com/agbru/progsquare/internal/ui"
)

func TestGetSearchersToRun(t *testing.T) {
	t.Parallel()
	factory := progressive.GlobalFactory()

	t.Run("all strategies", func(t *testing.T) {
		cfg := config.AppConfig{Strategy: "all"}
		searchers := GetSearchersToRun(cfg, factory)
		if len(searchers) != 2 {
			t.Fatalf("got %d searchers, want 2", len(searchers))
		}
	})

	t.Run("single strategy", func(t *testing.T) {
		cfg := config.AppConfig{Strategy: "sequential"}
		searchers := GetSearchersToRun(cfg, factory)
		if len(searchers) != 1 {
			t.Fatalf("got %d searchers, want 1", len(searchers))
		}
		if searchers[0].Name() != "Sequential Scan" {
			t.Errorf("Name() = %q, want Sequential Scan", searchers[0].Name())
		}
	})

	t.Run("unknown strategy", func(t *testing.T) {
		cfg := config.AppConfig{Strategy: "simd"}
		if searchers := GetSearchersToRun(cfg, factory); searchers != nil {
			t.Errorf("got %v, want nil for unknown strategy", searchers)
		}
	})
}

func TestPrintExecutionConfig(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	var buf bytes.Buffer
	cfg := config.AppConfig{Timeout: 5 * time.Minute, Workers: 4}
	PrintExecutionConfig(cfg, &buf)
	output := testutil.StripAnsiCodes(buf.String())

	for _, want := range []string{"Execution Configuration", "1,000,000,000,000", "5m0s", "logical processors", "workers: 4"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.SetCurrentTheme(ui.NoColorTheme)
	defer ui.SetCurrentTheme(ui.DarkTheme)

	factory := progressive.GlobalFactory()
	all := GetSearchersToRun(config.AppConfig{Strategy: "all"}, factory)
	single := GetSearchersToRun(config.AppConfig{Strategy: "parallel"}, factory)

	var buf bytes.Buffer
	PrintExecutionMode(all, &buf)
	if !strings.Contains(buf.String(), "Parallel comparison of all strategies") {
		t.Errorf("comparison mode not announced:\n%s", buf.String())
	}

	buf.Reset()
	PrintExecutionMode(single, &buf)
	output := testutil.StripAnsiCodes(buf.String())
	if !strings.Contains(output, "Single search with the Parallel Scan strategy") {
		t.Errorf("single mode not announced:\n%s", output)
	}
}
