package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// MeasurementRequest is the measurement holding one point per request.
const MeasurementRequest = "knxlink_request"

// RequestMetric describes one finished request.
//
// Action, GroupAddress, Datapoint and Status become tags; ExitCode, Packets
// and Duration become fields.
type RequestMetric struct {
	Action       string
	GroupAddress string
	Datapoint    string
	Status       string
	ExitCode     int
	Packets      int
	Duration     time.Duration
	Time         time.Time
}

// WriteRequestMetric queues a knxlink_request point.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Example:
//
//	client.WriteRequestMetric(influxdb.RequestMetric{
//	    Action:       "read",
//	    GroupAddress: "1/2/3",
//	    Datapoint:    "dpst-9-1",
//	    Status:       "SUCCESS",
//	    Packets:      1,
//	    Duration:     18 * time.Millisecond,
//	})
func (c *Client) WriteRequestMetric(m RequestMetric) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(newRequestPoint(m))
}

func newRequestPoint(m RequestMetric) *write.Point {
	ts := m.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	return write.NewPoint(
		MeasurementRequest,
		map[string]string{
			"action":        m.Action,
			"group_address": m.GroupAddress,
			"datapoint":     m.Datapoint,
			"status":        m.Status,
		},
		map[string]interface{}{
			"exit_code":   m.ExitCode,
			"packets":     m.Packets,
			"duration_ms": m.Duration.Milliseconds(),
		},
		ts,
	)
}
