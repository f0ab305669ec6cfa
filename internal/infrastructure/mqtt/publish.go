package mqtt

import (
	"fmt"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nerrad567/knxlink/internal/knx"
)

// maxPayloadSize bounds a single message (1MB), matching common broker limits.
const maxPayloadSize = 1 << 20

// Publish sends payload to topic and waits for the broker acknowledgement
// required by qos.
//
// Retained messages are kept by the broker for new subscribers; knxlink
// retains client status only, never request results.
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}

	if err := wait(c.client.Publish(topic, qos, retained, payload), defaultPublishTimeout); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPublishFailed, topic, err)
	}
	return nil
}

// PublishResult publishes the outcome of a request to ga on
// {prefix}/result/{escaped group address}, at the configured QoS and not
// retained.
//
// Example:
//
//	err := client.PublishResult(req.GroupAddress, payload) // knxlink/result/1%2F2%2F3
func (c *Client) PublishResult(ga knx.GroupAddress, payload []byte) error {
	if ga.IsZero() {
		return fmt.Errorf("%w: empty group address", ErrInvalidTopic)
	}
	return c.Publish(c.topics.Result(ga), payload, c.qos, false)
}

// publishStatus publishes the retained presence payload of this client.
func (c *Client) publishStatus(payload string) pahomqtt.Token {
	return c.client.Publish(c.topics.Status(c.clientID), c.qos, true, payload)
}
