package gpio

import (
	"errors"
	"testing"
)

func TestFakeReaderRead(t *testing.T) {
	samples := []Sample{
		Pressed(4, 0),
		Pressed(4, 1, 3),
		Idle(4),
	}

	f := NewFakeReader(samples)

	// First sweep: channel 0 pressed.
	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0] || got[1] || got[2] || got[3] {
		t.Errorf("sample 0: expected only channel 0 pressed, got %v", got)
	}

	// Second sweep: channels 1 and 3 pressed.
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0] || !got[1] || got[2] || !got[3] {
		t.Errorf("sample 1: expected channels 1 and 3 pressed, got %v", got)
	}

	// Third sweep: all idle.
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range got {
		if p {
			t.Errorf("sample 2: expected channel %d idle", i)
		}
	}

	// Fourth read should repeat the last sweep.
	got, err = f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range got {
		if p {
			t.Errorf("sample 3 (repeat): expected channel %d idle", i)
		}
	}
}

func TestFakeReaderCopiesSweep(t *testing.T) {
	f := NewFakeReader([]Sample{Pressed(2, 0)})

	got, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got[0] = false

	again, err := f.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again[0] {
		t.Error("mutating a returned sweep must not affect the script")
	}
}

func TestFakeReaderNoSamples(t *testing.T) {
	f := NewFakeReader(nil)

	_, err := f.Read()
	if err == nil {
		t.Error("expected error with no samples")
	}
}

func TestFakeReaderError(t *testing.T) {
	f := NewFakeReader([]Sample{Pressed(1, 0)})
	f.ReadError = errors.New("simulated error")

	_, err := f.Read()
	if err == nil {
		t.Error("expected error to be returned")
	}
	if err.Error() != "simulated error" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFakeReaderClose(t *testing.T) {
	f := NewFakeReader([]Sample{Idle(1)})

	if f.Closed {
		t.Error("should not be closed initially")
	}

	err := f.Close()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if !f.Closed {
		t.Error("should be closed after Close()")
	}
}

func TestFakeReaderReset(t *testing.T) {
	samples := []Sample{
		Pressed(2, 0),
		Pressed(2, 1),
	}

	f := NewFakeReader(samples)

	// Consume first sweep.
	f.Read()

	// Reset.
	f.Reset()

	// Should read first sweep again.
	got, _ := f.Read()
	if !got[0] || got[1] {
		t.Errorf("after reset: expected channel 0 pressed, got %v", got)
	}
}

func TestSampleHelpers(t *testing.T) {
	idle := Idle(3)
	if len(idle) != 3 {
		t.Fatalf("Idle: expected 3 channels, got %d", len(idle))
	}
	for i, p := range idle {
		if p {
			t.Errorf("Idle: channel %d should be open", i)
		}
	}

	down := Pressed(5, 1, 4)
	if len(down) != 5 {
		t.Fatalf("Pressed: expected 5 channels, got %d", len(down))
	}
	for i, p := range down {
		want := i == 1 || i == 4
		if p != want {
			t.Errorf("Pressed: channel %d = %v, want %v", i, p, want)
		}
	}
}
