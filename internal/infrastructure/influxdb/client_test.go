package influxdb

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/nerrad567/knxlink/internal/infrastructure/config"
)

// testConfig returns a configuration for a local development InfluxDB.
func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "knxlink-dev-token",
		Org:           "knxlink",
		Bucket:        "knxlink",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

// skipIfNoInfluxDB skips the test if InfluxDB is not running.
func skipIfNoInfluxDB(t *testing.T) {
	t.Helper()
	if os.Getenv("RUN_INTEGRATION") == "" {
		client, err := Connect(context.Background(), testConfig())
		if err != nil {
			t.Skip("InfluxDB not available, skipping integration test")
		}
		client.Close()
	}
}

// =============================================================================
// Connection Tests
// =============================================================================

func TestConnect(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := Connect(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	if !client.IsConnected() {
		t.Error("IsConnected() = false after Connect()")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close()")
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	if _, err := Connect(context.Background(), cfg); !errors.Is(err, ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "http://127.0.0.1:59999"

	if _, err := Connect(context.Background(), cfg); !errors.Is(err, ErrConnectionFailed) {
		t.Errorf("Connect() error = %v, want ErrConnectionFailed", err)
	}
}

func TestClose_Nil(t *testing.T) {
	client := &Client{}
	if err := client.Close(); err != nil {
		t.Errorf("Close() on nil client error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true for zero client")
	}

	// Must not panic on a disconnected client.
	client.WriteRequestMetric(RequestMetric{Action: "read"})
}

// =============================================================================
// Write Tests
// =============================================================================

func TestNewRequestPoint(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	point := newRequestPoint(RequestMetric{
		Action:       "write",
		GroupAddress: "1/2/3",
		Datapoint:    "dpst-1-1",
		Status:       "ERROR_GROUP_ADDRESS",
		ExitCode:     64,
		Packets:      1,
		Duration:     42 * time.Millisecond,
		Time:         ts,
	})

	if point.Name() != MeasurementRequest {
		t.Errorf("Name() = %q, want %q", point.Name(), MeasurementRequest)
	}
	if !point.Time().Equal(ts) {
		t.Errorf("Time() = %v, want %v", point.Time(), ts)
	}

	line := write.PointToLineProtocol(point, time.Nanosecond)
	for _, want := range []string{
		"action=write",
		"group_address=1/2/3",
		"datapoint=dpst-1-1",
		"status=ERROR_GROUP_ADDRESS",
		"exit_code=64i",
		"packets=1i",
		"duration_ms=42i",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("line protocol %q missing %q", line, want)
		}
	}
}

func TestNewRequestPoint_DefaultTime(t *testing.T) {
	before := time.Now()
	point := newRequestPoint(RequestMetric{Action: "read", GroupAddress: "4711"})
	if point.Time().Before(before) {
		t.Errorf("Time() = %v, want now", point.Time())
	}
}

func TestWriteRequestMetric(t *testing.T) {
	skipIfNoInfluxDB(t)

	client, err := Connect(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	writeErrs := make(chan error, 1)
	client.SetOnError(func(err error) {
		select {
		case writeErrs <- err:
		default:
		}
	})

	client.WriteRequestMetric(RequestMetric{
		Action:       "read",
		GroupAddress: "1/2/3",
		Datapoint:    "dpst-9-1",
		Status:       "SUCCESS",
		Packets:      1,
		Duration:     5 * time.Millisecond,
	})
	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case err := <-writeErrs:
		t.Errorf("async write error = %v", err)
	default:
	}
}
