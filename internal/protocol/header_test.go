package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildFrame(t *testing.T) {
	tests := []struct {
		name   string
		action Action
		body   []byte
		want   []byte
	}{
		{
			name:   "empty body",
			action: ActionReadRequest,
			want:   []byte{0x01, 0x00, 0x00},
		},
		{
			name:   "write request body",
			action: ActionWriteRequest,
			body:   []byte{0xAA, 0xBB},
			want:   []byte{0x01, 0x01, 0x02, 0xAA, 0xBB},
		},
		{
			name:   "largest body",
			action: ActionReadResponse,
			body:   bytes.Repeat([]byte{0x20}, MaxBodySize),
			want:   append([]byte{0x01, 0x02, 0xFF}, bytes.Repeat([]byte{0x20}, MaxBodySize)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildFrame(tt.action, tt.body)
			if err != nil {
				t.Fatalf("BuildFrame() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildFrame() = % X, want % X", got, tt.want)
			}
		})
	}
}

func TestBuildFrameErrors(t *testing.T) {
	if _, err := BuildFrame(ActionWriteRequest, make([]byte, MaxBodySize+1)); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversized body error = %v, want ErrFrameTooLarge", err)
	}
	if _, err := BuildFrame(Action(4), nil); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("unknown action error = %v, want ErrUnknownAction", err)
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    Header
		wantErr error
	}{
		{
			name: "read response",
			data: []byte{0x01, 0x02, 0x05, 0x80, 0x00},
			want: Header{Version: 1, Action: ActionReadResponse, Length: 5},
		},
		{
			name: "version is passed through",
			data: []byte{0x02, 0x03, 0x00},
			want: Header{Version: 2, Action: ActionWriteResponse, Length: 0},
		},
		{
			name:    "too short",
			data:    []byte{0x01, 0x02},
			wantErr: ErrFrameTooShort,
		},
		{
			name:    "empty",
			data:    nil,
			wantErr: ErrFrameTooShort,
		},
		{
			name:    "unknown action",
			data:    []byte{0x01, 0x04, 0x00},
			wantErr: ErrUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader(tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseHeader() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseHeader() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestHeaderBody(t *testing.T) {
	frame := []byte{0x01, 0x02, 0x03, 0xAA, 0xBB, 0xCC, 0xDD}
	h, err := ParseHeader(frame)
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	body, err := h.Body(frame)
	if err != nil {
		t.Fatalf("Body() error = %v", err)
	}
	if want := []byte{0xAA, 0xBB, 0xCC}; !bytes.Equal(body, want) {
		t.Errorf("Body() = % X, want % X", body, want)
	}
	if h.FrameSize() != 6 {
		t.Errorf("FrameSize() = %d, want 6", h.FrameSize())
	}

	if _, err := h.Body(frame[:5]); !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("truncated Body() error = %v, want ErrFrameTooShort", err)
	}
}

func TestParseAction(t *testing.T) {
	for code := uint8(0); code <= 3; code++ {
		a, err := ParseAction(code)
		if err != nil {
			t.Errorf("ParseAction(%d) error = %v", code, err)
		}
		if uint8(a) != code {
			t.Errorf("ParseAction(%d) = %d", code, a)
		}
	}
	if _, err := ParseAction(0xFF); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ParseAction(0xFF) error = %v, want ErrUnknownAction", err)
	}
	if ActionReadRequest.Response() != ActionReadResponse || ActionWriteRequest.Response() != ActionWriteResponse {
		t.Error("Response() does not pair requests with responses")
	}
}

func TestParseStatus(t *testing.T) {
	for code := uint8(0); code <= 6; code++ {
		if _, err := ParseStatus(code); err != nil {
			t.Errorf("ParseStatus(%d) error = %v", code, err)
		}
	}
	if _, err := ParseStatus(7); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("ParseStatus(7) error = %v, want ErrUnknownStatus", err)
	}
	if got := StatusErrorGroupAddress.String(); got != "ERROR_GROUP_ADDRESS" {
		t.Errorf("String() = %q", got)
	}
}
