package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestNewLoggerAttachesComponent(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "server")

	logger.Printf("listening on %s", ":8080")
	out := buf.String()
	if !strings.Contains(out, `"component":"server"`) {
		t.Errorf("output missing component field: %s", out)
	}
	if !strings.Contains(out, "listening on :8080") {
		t.Errorf("output missing message: %s", out)
	}
}

func TestPrintlnTrimsTrailingNewline(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test")

	logger.Println("shutdown", "complete")
	if strings.Contains(buf.String(), `shutdown complete\n`) {
		t.Errorf("message should not embed a trailing newline: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shutdown complete") {
		t.Errorf("output missing joined message: %s", buf.String())
	}
}

func TestStdLoggerAdapter(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	adapter := NewStdLoggerAdapter(log.New(&buf, "", 0))

	adapter.Printf("active=%d", 2)
	adapter.Println("done")
	out := buf.String()
	if !strings.Contains(out, "active=2") || !strings.Contains(out, "done") {
		t.Errorf("unexpected adapter output: %s", out)
	}
}
