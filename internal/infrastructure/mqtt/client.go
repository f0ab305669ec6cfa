package mqtt

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/knxlink/internal/infrastructure/config"
)

// Client is a short-lived MQTT session of one knxlink process.
//
// A request command connects, publishes its result and closes. The monitor
// command stays connected and follows every result; its subscriptions are
// restored when paho reconnects.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	client   pahomqtt.Client
	topics   Topics
	clientID string
	qos      byte

	connected atomic.Bool

	// mu guards subscriptions and logger.
	mu            sync.Mutex
	subscriptions map[string]subscription
	logger        Logger
}

// Logger receives connection warnings and handler failures.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

// subscription is replayed after a reconnect.
type subscription struct {
	qos     byte
	handler MessageHandler
}

// MessageHandler receives one message. Handlers run on paho's goroutines;
// a returned error is logged and otherwise ignored.
type MessageHandler func(topic string, payload []byte) error

// Connect derives a unique client ID from cfg.Broker.ClientID, registers the
// offline LWT on {prefix}/status/{client id} and connects to the broker.
//
// The initial connection is attempted once; it fails with ErrConnectionFailed
// instead of retrying.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	c := &Client{
		topics:   NewTopics(cfg.TopicPrefix),
		clientID: uniqueClientID(cfg.Broker.ClientID),
		qos:      byte(cfg.QoS), //nolint:gosec // validated 0-2 by config
	}

	opts := buildClientOptions(cfg, c.clientID)
	configureLWT(opts, c.topics, c.clientID)
	opts.SetOnConnectHandler(func(pahomqtt.Client) {
		c.onConnected()
	})
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		c.onConnectionLost(err)
	})
	opts.SetReconnectingHandler(func(pahomqtt.Client, *pahomqtt.ClientOptions) {
		c.warn("MQTT reconnecting", "client_id", c.clientID)
	})

	c.client = pahomqtt.NewClient(opts)
	if err := wait(c.client.Connect(), defaultConnectTimeout); err != nil {
		return nil, fmt.Errorf("%w: %s:%d: %w", ErrConnectionFailed, cfg.Broker.Host, cfg.Broker.Port, err)
	}

	// The OnConnect handler runs asynchronously; mark the session usable now.
	c.connected.Store(true)
	return c, nil
}

// onConnected runs on the initial connect and on every reconnect.
func (c *Client) onConnected() {
	c.connected.Store(true)

	c.mu.Lock()
	for topic, sub := range c.subscriptions {
		c.client.Subscribe(topic, sub.qos, c.wrapHandler(sub.handler))
	}
	c.mu.Unlock()

	c.publishStatus(buildOnlinePayload(c.clientID))
}

func (c *Client) onConnectionLost(err error) {
	c.connected.Store(false)
	c.warn("MQTT connection lost", "client_id", c.clientID, "error", err)
}

// Close publishes a graceful offline status, distinct from the LWT crash
// status, and disconnects. Closing a zero Client is a no-op.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	if c.IsConnected() {
		c.publishStatus(buildOfflinePayload(c.clientID)).WaitTimeout(defaultPublishTimeout)
	}
	c.client.Disconnect(defaultDisconnectQuiesce)
	c.connected.Store(false)
	return nil
}

// IsConnected reports the last known connection state.
func (c *Client) IsConnected() bool {
	return c.connected.Load() && c.client != nil && c.client.IsConnected()
}

// Topics returns the topic builder for the configured prefix.
func (c *Client) Topics() Topics {
	return c.topics
}

// ClientID returns the client ID used for this connection.
func (c *Client) ClientID() string {
	return c.clientID
}

// SetLogger sets a logger for connection warnings and handler failures.
// Without one they are dropped.
func (c *Client) SetLogger(logger Logger) {
	c.mu.Lock()
	c.logger = logger
	c.mu.Unlock()
}

func (c *Client) getLogger() Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.logger
}

func (c *Client) warn(msg string, args ...any) {
	if logger := c.getLogger(); logger != nil {
		logger.Warn(msg, args...)
	}
}

// wrapHandler adapts a MessageHandler to paho, recovering panics and
// logging returned errors.
func (c *Client) wrapHandler(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		defer func() {
			if r := recover(); r != nil {
				if logger := c.getLogger(); logger != nil {
					logger.Error("MQTT handler panic recovered", "topic", msg.Topic(), "panic", r)
				}
			}
		}()

		if err := handler(msg.Topic(), msg.Payload()); err != nil {
			c.warn("MQTT handler returned error", "topic", msg.Topic(), "error", err)
		}
	}
}

// wait blocks until token completes, failing with ErrTimeout after timeout.
func wait(token pahomqtt.Token, timeout time.Duration) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w after %v", ErrTimeout, timeout)
	}
	return token.Error()
}
