package influxdb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/nerrad567/knxlink/internal/infrastructure/config"
)

const (
	defaultPingTimeout = 3 * time.Second

	// drainTimeout bounds how long Close waits for write errors of the
	// final flush to be delivered.
	drainTimeout = 2 * time.Second

	defaultBatchSize     = 100
	defaultFlushInterval = 1 // seconds

	millisecondsPerSecond = 1000
)

// Client records request metrics in an InfluxDB v2 bucket.
//
// Points are queued on the non-blocking write API and sent in batches.
// A knxlink process writes a handful of points and exits, so Close flushes
// the queue and waits for the resulting write errors before returning.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPI

	connected atomic.Bool

	// drained is closed once the write error channel is exhausted.
	drained chan struct{}

	mu      sync.Mutex
	onError func(err error)
}

// Connect creates the client with token authentication, pings the server
// and starts the batching write API for cfg.Org and cfg.Bucket.
//
// The ping is bounded by ctx and a 3 second timeout. A disabled
// configuration fails with ErrDisabled.
func Connect(ctx context.Context, cfg config.InfluxDBConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, ErrDisabled
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	flushInterval := cfg.FlushInterval
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}

	// #nosec G115 -- values validated above to be positive
	client := influxdb2.NewClientWithOptions(
		cfg.URL,
		cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(uint(batchSize)).
			SetFlushInterval(uint(flushInterval)*millisecondsPerSecond),
	)

	if err := ping(ctx, client); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrConnectionFailed, cfg.URL, err)
	}

	c := &Client{
		client:   client,
		writeAPI: client.WriteAPI(cfg.Org, cfg.Bucket),
		drained:  make(chan struct{}),
	}
	c.connected.Store(true)

	go c.forwardErrors(c.writeAPI.Errors())
	return c, nil
}

func ping(ctx context.Context, client influxdb2.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
	defer cancel()

	healthy, err := client.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	if !healthy {
		return fmt.Errorf("ping: server not healthy")
	}
	return nil
}

// forwardErrors hands async write errors to the callback until the write
// API closes its error channel.
func (c *Client) forwardErrors(errs <-chan error) {
	defer close(c.drained)
	for err := range errs {
		c.mu.Lock()
		callback := c.onError
		c.mu.Unlock()

		if callback != nil {
			callback(fmt.Errorf("%w: %w", ErrWriteFailed, err))
		}
	}
}

// Close flushes queued points, closes the client and waits briefly for the
// errors of that final write. Closing a zero Client is a no-op.
func (c *Client) Close() error {
	if c.client == nil || !c.connected.Swap(false) {
		return nil
	}

	c.writeAPI.Flush()
	c.client.Close()

	select {
	case <-c.drained:
	case <-time.After(drainTimeout):
	}
	return nil
}

// IsConnected reports whether Connect succeeded and Close was not called.
func (c *Client) IsConnected() bool {
	return c.connected.Load()
}

// SetOnError sets the callback receiving async write failures, wrapped
// with ErrWriteFailed.
func (c *Client) SetOnError(callback func(err error)) {
	c.mu.Lock()
	c.onError = callback
	c.mu.Unlock()
}
