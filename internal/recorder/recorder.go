package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nerrad567/knxlink/internal/exitcode"
	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/infrastructure/influxdb"
	"github.com/nerrad567/knxlink/internal/knx"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
)

// Status values for outcomes that carry no remote status.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Store persists history records. Satisfied by *history.SQLiteRepository.
type Store interface {
	Create(ctx context.Context, rec *history.Record) error
}

// Publisher publishes records over MQTT. Satisfied by *mqtt.Client.
type Publisher interface {
	PublishResult(ga knx.GroupAddress, payload []byte) error
}

// MetricWriter writes request metrics. Satisfied by *influxdb.Client.
type MetricWriter interface {
	WriteRequestMetric(m influxdb.RequestMetric)
}

// Logger interface for sink failures.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

// Deps holds the optional sinks. Nil sinks are skipped.
type Deps struct {
	Store     Store
	Publisher Publisher
	Metrics   MetricWriter
	Logger    Logger
}

// Outcome is a finished request as seen by the caller.
type Outcome struct {
	Request protocol.Request
	Result  linkclient.Result
	Err     error
}

// Recorder fans every outcome out to the configured sinks.
//
// Sink failures are logged and never returned; recording must not change
// the result of the request it describes.
type Recorder struct {
	store     Store
	publisher Publisher
	metrics   MetricWriter
	logger    Logger
	now       func() time.Time
}

// New creates a Recorder from deps.
func New(deps Deps) *Recorder {
	return &Recorder{
		store:     deps.Store,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// Enabled reports whether at least one sink is configured.
func (r *Recorder) Enabled() bool {
	return r != nil && (r.store != nil || r.publisher != nil || r.metrics != nil)
}

// Record converts o into a history record and hands it to every sink.
// It returns the record so callers can reuse it.
func (r *Recorder) Record(ctx context.Context, o Outcome) history.Record {
	rec := NewRecord(o, r.clock())
	if !r.Enabled() {
		return rec
	}

	if r.store != nil {
		if err := r.store.Create(ctx, &rec); err != nil {
			r.warn("recording history failed", "group_address", rec.GroupAddress, "error", err)
		}
	}

	if r.publisher != nil {
		r.publish(o.Request.GroupAddress, rec)
	}

	if r.metrics != nil {
		r.metrics.WriteRequestMetric(influxdb.RequestMetric{
			Action:       rec.Action,
			GroupAddress: rec.GroupAddress,
			Datapoint:    rec.Datapoint,
			Status:       rec.Status,
			ExitCode:     rec.ExitCode,
			Packets:      rec.Packets,
			Duration:     rec.Duration,
			Time:         rec.CreatedAt,
		})
	}

	return rec
}

func (r *Recorder) publish(ga knx.GroupAddress, rec history.Record) {
	payload, err := json.Marshal(rec)
	if err != nil {
		r.warn("encoding result failed", "group_address", rec.GroupAddress, "error", err)
		return
	}

	if err := r.publisher.PublishResult(ga, payload); err != nil {
		r.warn("publishing result failed", "group_address", rec.GroupAddress, "error", err)
		return
	}
	if r.logger != nil {
		r.logger.Debug("result published", "group_address", rec.GroupAddress, "bytes", len(payload))
	}
}

func (r *Recorder) clock() time.Time {
	if r == nil || r.now == nil {
		return time.Now()
	}
	return r.now()
}

func (r *Recorder) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}

// NewRecord builds the history record of o, stamped with at.
func NewRecord(o Outcome, at time.Time) history.Record {
	rec := history.Record{
		Action:       ActionName(o.Request.Action),
		GroupAddress: o.Request.GroupAddress.String(),
		Datapoint:    o.Request.Datapoint.String(),
		Values:       o.Request.Values,
		Status:       StatusSuccess,
		Messages:     o.Result.Messages,
		ExitCode:     exitcode.For(o.Err),
		Packets:      o.Result.Packets,
		Duration:     o.Result.Duration,
		CreatedAt:    at.UTC(),
	}

	if o.Err != nil {
		rec.Error = o.Err.Error()
		rec.Status = StatusFailed

		var remote *linkclient.RemoteStatusError
		if errors.As(o.Err, &remote) {
			rec.Status = remote.Status.String()
		}
	}
	return rec
}

// ActionName returns the short name used in records: "read" or "write".
func ActionName(a protocol.Action) string {
	switch a {
	case protocol.ActionReadRequest, protocol.ActionReadResponse:
		return "read"
	case protocol.ActionWriteRequest, protocol.ActionWriteResponse:
		return "write"
	default:
		return a.String()
	}
}
