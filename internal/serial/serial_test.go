package serial

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fenwick/typewriter-scanner/internal/scan"
)

// keyEvent builds a press event for the given symbol using its real
// layout position.
func keyEvent(t *testing.T, sym byte) scan.Event {
	t.Helper()
	for i, ch := range scan.DefaultLayout() {
		if ch.Symbol == sym {
			return scan.Event{
				Timestamp: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
				Index:     i,
				Pin:       ch.Pin,
				Symbol:    sym,
			}
		}
	}
	t.Fatalf("symbol %q not in layout", sym)
	return scan.Event{}
}

type failWriter struct {
	err error
}

func (w failWriter) Write(p []byte) (int, error) {
	return 0, w.err
}

func TestRawFormatWritesBareSymbolBytes(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf, FormatRaw)

	if err := e.EmitKey(keyEvent(t, 'a')); err != nil {
		t.Fatalf("EmitKey: %v", err)
	}
	if err := e.EmitKey(keyEvent(t, 'w')); err != nil {
		t.Fatalf("EmitKey: %v", err)
	}

	if got := buf.String(); got != "aw" {
		t.Errorf("raw output = %q, want %q (one byte per press, no framing)", got, "aw")
	}
}

func TestVerboseFormatWritesOneLinePerPress(t *testing.T) {
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf, FormatVerbose)

	if err := e.EmitKey(keyEvent(t, 'a')); err != nil {
		t.Fatalf("EmitKey: %v", err)
	}

	if got := buf.String(); got != "Key pressed: a\r\n" {
		t.Errorf("verbose output = %q, want %q", got, "Key pressed: a\r\n")
	}
}

func TestVerboseLineSurvivesLegacyParse(t *testing.T) {
	// Line consumers split on ": " and take the second field as the
	// symbol. The verbose format must keep that shape.
	var buf bytes.Buffer
	e := NewWriterEmitter(&buf, FormatVerbose)

	if err := e.EmitKey(keyEvent(t, 'p')); err != nil {
		t.Fatalf("EmitKey: %v", err)
	}

	line := strings.TrimRight(buf.String(), "\r\n")
	parts := strings.SplitN(line, ": ", 2)
	if len(parts) != 2 {
		t.Fatalf("line %q does not split on %q", line, ": ")
	}
	if parts[0] != "Key pressed" {
		t.Errorf("prefix = %q, want %q", parts[0], "Key pressed")
	}
	if parts[1] != "p" {
		t.Errorf("symbol field = %q, want %q", parts[1], "p")
	}
}

func TestAnnounceWritesCRLFTerminatedLine(t *testing.T) {
	for _, format := range []Format{FormatRaw, FormatVerbose} {
		var buf bytes.Buffer
		e := NewWriterEmitter(&buf, format)

		if err := e.Announce("typewriter ready"); err != nil {
			t.Fatalf("format %q: Announce: %v", format, err)
		}
		if got := buf.String(); got != "typewriter ready\r\n" {
			t.Errorf("format %q: announce output = %q, want %q", format, got, "typewriter ready\r\n")
		}
	}
}

func TestEmitKeyWrapsWriteError(t *testing.T) {
	boom := errors.New("port gone")
	e := NewWriterEmitter(failWriter{err: boom}, FormatRaw)

	err := e.EmitKey(keyEvent(t, 'a'))
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap %v", err, boom)
	}
}

func TestAnnounceWrapsWriteError(t *testing.T) {
	boom := errors.New("port gone")
	e := NewWriterEmitter(failWriter{err: boom}, FormatRaw)

	err := e.Announce("typewriter ready")
	if err == nil {
		t.Fatal("expected error from failing writer")
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap %v", err, boom)
	}
}

func TestFakeEmitterRecordsInOrder(t *testing.T) {
	f := NewFakeEmitter()

	if err := f.Announce("typewriter ready"); err != nil {
		t.Fatalf("Announce: %v", err)
	}
	for _, sym := range []byte{'a', 's', 'a'} {
		if err := f.EmitKey(keyEvent(t, sym)); err != nil {
			t.Fatalf("EmitKey %q: %v", sym, err)
		}
	}

	if len(f.Announcements) != 1 || f.Announcements[0] != "typewriter ready" {
		t.Errorf("announcements = %q, want one %q", f.Announcements, "typewriter ready")
	}
	if got := string(f.Bytes); got != "asa" {
		t.Errorf("bytes = %q, want %q", got, "asa")
	}
	if len(f.Events) != 3 {
		t.Fatalf("recorded %d events, want 3", len(f.Events))
	}
	if f.Events[1].Pin != "D2" {
		t.Errorf("event pin = %q, want %q", f.Events[1].Pin, "D2")
	}
}

func TestFakeEmitterErrorInjection(t *testing.T) {
	boom := errors.New("injected")
	f := NewFakeEmitter()
	f.EmitError = boom

	if err := f.EmitKey(keyEvent(t, 'a')); !errors.Is(err, boom) {
		t.Errorf("EmitKey error = %v, want %v", err, boom)
	}
	if len(f.Events) != 0 {
		t.Errorf("failed emit was recorded: %v", f.Events)
	}

	f.AnnounceError = boom
	if err := f.Announce("typewriter ready"); !errors.Is(err, boom) {
		t.Errorf("Announce error = %v, want %v", err, boom)
	}
	if len(f.Announcements) != 0 {
		t.Errorf("failed announce was recorded: %v", f.Announcements)
	}
}

func TestFakeEmitterClose(t *testing.T) {
	f := NewFakeEmitter()
	if f.Closed {
		t.Fatal("fake reports closed before Close")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Error("fake does not report closed after Close")
	}
}
