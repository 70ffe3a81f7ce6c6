package id3v2

import (
	"bytes"
	"testing"
)

type stubLogger struct{ lines []string }

func (s *stubLogger) Printf(format string, args ...interface{}) {
	s.lines = append(s.lines, format)
}

func TestHostNilIsSafe(t *testing.T) {
	var h *Host
	h.logf("unused %d", 1)
	h.zone("unused", 0, 1)
	if err := h.pictureStream(bytes.NewReader(nil), 0, Picture{}); err != nil {
		t.Errorf("nil host pictureStream returned error: %v", err)
	}
}

func TestHostZoneCallback(t *testing.T) {
	var zones []Zone
	h := &Host{OnZone: func(z Zone) { zones = append(zones, z) }}
	h.zone("header", 0, 10)
	if len(zones) != 1 || zones[0].Name != "header" || zones[0].End != 10 {
		t.Errorf("zones = %+v", zones)
	}
}

func TestHostLogger(t *testing.T) {
	sl := &stubLogger{}
	h := &Host{Logger: sl}
	h.logf("something happened: %d", 42)
	if len(sl.lines) != 1 {
		t.Fatalf("logger received %d calls, want 1", len(sl.lines))
	}
}
