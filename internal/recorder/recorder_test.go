package recorder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/knxlink/internal/history"
	"github.com/nerrad567/knxlink/internal/infrastructure/influxdb"
	"github.com/nerrad567/knxlink/internal/infrastructure/mqtt"
	"github.com/nerrad567/knxlink/internal/knx"
	"github.com/nerrad567/knxlink/internal/linkclient"
	"github.com/nerrad567/knxlink/internal/protocol"
)

type fakeStore struct {
	records []history.Record
	err     error
}

func (s *fakeStore) Create(_ context.Context, rec *history.Record) error {
	if s.err != nil {
		return s.err
	}
	rec.ID = fmt.Sprintf("rec-%d", len(s.records)+1)
	s.records = append(s.records, *rec)
	return nil
}

type published struct {
	groupAddress string
	payload      []byte
}

type fakePublisher struct {
	messages []published
	err      error
}

func (p *fakePublisher) PublishResult(ga knx.GroupAddress, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, published{ga.String(), payload})
	return nil
}

type fakeMetrics struct {
	points []influxdb.RequestMetric
}

func (m *fakeMetrics) WriteRequestMetric(rm influxdb.RequestMetric) {
	m.points = append(m.points, rm)
}

type fakeLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *fakeLogger) Debug(string, ...any) {}

func (l *fakeLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	l.warns = append(l.warns, msg)
	l.mu.Unlock()
}

func mustRequest(t *testing.T, action protocol.Action, ga, dpt string, values ...string) protocol.Request {
	t.Helper()
	req, err := protocol.ParseRequest(action, ga, dpt, values)
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	return req
}

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name         string
		outcome      Outcome
		wantAction   string
		wantStatus   string
		wantExitCode int
		wantError    bool
	}{
		{
			name: "successful read",
			outcome: Outcome{
				Request: mustRequest(t, protocol.ActionReadRequest, "1/2/3", "9.001"),
				Result:  linkclient.Result{Packets: 1, Messages: []string{"21.5"}, Duration: 8 * time.Millisecond},
			},
			wantAction: "read",
			wantStatus: StatusSuccess,
		},
		{
			name: "remote status",
			outcome: Outcome{
				Request: mustRequest(t, protocol.ActionWriteRequest, "1/2/3", "1.001", "on"),
				Result:  linkclient.Result{Packets: 1},
				Err:     &linkclient.RemoteStatusError{Status: protocol.StatusErrorGroupAddress, Message: "unknown"},
			},
			wantAction:   "write",
			wantStatus:   "ERROR_GROUP_ADDRESS",
			wantExitCode: 64,
			wantError:    true,
		},
		{
			name: "transport failure",
			outcome: Outcome{
				Request: mustRequest(t, protocol.ActionReadRequest, "4711", "dpt-13"),
				Err:     &linkclient.TransportError{Op: linkclient.OpConnect, Refused: true, Err: errors.New("refused")},
			},
			wantAction:   "read",
			wantStatus:   StatusFailed,
			wantExitCode: 50,
			wantError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecord(tt.outcome, fixedTime)
			if rec.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", rec.Action, tt.wantAction)
			}
			if rec.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", rec.Status, tt.wantStatus)
			}
			if rec.ExitCode != tt.wantExitCode {
				t.Errorf("ExitCode = %d, want %d", rec.ExitCode, tt.wantExitCode)
			}
			if (rec.Error != "") != tt.wantError {
				t.Errorf("Error = %q, want set = %v", rec.Error, tt.wantError)
			}
			if rec.GroupAddress != tt.outcome.Request.GroupAddress.String() {
				t.Errorf("GroupAddress = %q", rec.GroupAddress)
			}
			if !rec.CreatedAt.Equal(fixedTime) {
				t.Errorf("CreatedAt = %v, want %v", rec.CreatedAt, fixedTime)
			}
		})
	}
}

func TestRecordFansOut(t *testing.T) {
	store := &fakeStore{}
	pub := &fakePublisher{}
	metrics := &fakeMetrics{}
	r := New(Deps{Store: store, Publisher: pub, Metrics: metrics, Logger: &fakeLogger{}})
	r.now = func() time.Time { return fixedTime }

	rec := r.Record(context.Background(), Outcome{
		Request: mustRequest(t, protocol.ActionWriteRequest, "1/2/3", "dpst-1-1", "on"),
		Result:  linkclient.Result{Packets: 1, Messages: []string{"ok"}, Duration: 3 * time.Millisecond},
	})

	if rec.ID != "rec-1" {
		t.Errorf("returned record ID = %q, want the stored ID", rec.ID)
	}
	if len(store.records) != 1 {
		t.Fatalf("stored %d records, want 1", len(store.records))
	}

	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.groupAddress != "1/2/3" {
		t.Errorf("published group address = %q, want 1/2/3", msg.groupAddress)
	}
	var decoded history.Record
	if err := json.Unmarshal(msg.payload, &decoded); err != nil {
		t.Fatalf("payload is not a record: %v", err)
	}
	if decoded.ID != "rec-1" || !slices.Equal(decoded.Values, []string{"on"}) {
		t.Errorf("payload record = %+v", decoded)
	}

	if len(metrics.points) != 1 {
		t.Fatalf("wrote %d metrics, want 1", len(metrics.points))
	}
	point := metrics.points[0]
	if point.Action != "write" || point.Status != StatusSuccess || point.Packets != 1 || !point.Time.Equal(fixedTime) {
		t.Errorf("metric = %+v", point)
	}
}

func TestRecordSinkFailuresAreLogged(t *testing.T) {
	logger := &fakeLogger{}
	r := New(Deps{
		Store:     &fakeStore{err: errors.New("disk full")},
		Publisher: &fakePublisher{err: mqtt.ErrNotConnected},
		Logger:    logger,
	})

	rec := r.Record(context.Background(), Outcome{
		Request: mustRequest(t, protocol.ActionReadRequest, "1/2/3", "1.001"),
	})
	if rec.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", rec.Status, StatusSuccess)
	}
	if len(logger.warns) != 2 {
		t.Errorf("warnings = %v, want 2", logger.warns)
	}
}

func TestRecordWithoutSinks(t *testing.T) {
	var nilRecorder *Recorder
	if nilRecorder.Enabled() {
		t.Error("nil Recorder reports Enabled()")
	}

	r := New(Deps{})
	if r.Enabled() {
		t.Error("Recorder without sinks reports Enabled()")
	}
	rec := r.Record(context.Background(), Outcome{
		Request: mustRequest(t, protocol.ActionReadRequest, "4711", "1"),
	})
	if rec.GroupAddress != "4711" || rec.Datapoint != "dpt-1" {
		t.Errorf("record = %+v", rec)
	}
}

func TestActionName(t *testing.T) {
	tests := []struct {
		action protocol.Action
		want   string
	}{
		{protocol.ActionReadRequest, "read"},
		{protocol.ActionWriteRequest, "write"},
		{protocol.ActionReadResponse, "read"},
		{protocol.ActionWriteResponse, "write"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ActionName(tt.action); got != tt.want {
				t.Errorf("ActionName(%v) = %q, want %q", tt.action, got, tt.want)
			}
		})
	}
}
