package instrument

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestSynthSessionDeterministic(t *testing.T) {
	cfg := SynthConfig{Harmonics: map[int]float64{2: 0.05, 3: 0.02}}
	ctx := context.Background()

	a := NewSynthSession(cfg)
	b := NewSynthSession(cfg)

	if err := a.Configure(ctx, 1000); err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	if err := b.Configure(ctx, 1000); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	ca, err := a.Acquire(ctx, 1000)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	cb, err := b.Acquire(ctx, 1000)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if len(ca.Volts) != len(cb.Volts) {
		t.Fatalf("capture lengths differ: %d vs %d", len(ca.Volts), len(cb.Volts))
	}
	for i := range ca.Volts {
		if ca.Volts[i] != cb.Volts[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, ca.Volts[i], cb.Volts[i])
		}
	}
}

func TestSynthSessionDefaults(t *testing.T) {
	s := NewSynthSession(SynthConfig{})
	c, err := s.Acquire(context.Background(), 1000)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	if len(c.Volts) != 4096 {
		t.Errorf("expected 4096 samples, got %d", len(c.Volts))
	}
	if c.SampleRate != 50000 {
		t.Errorf("expected 50000 Hz sample rate, got %v", c.SampleRate)
	}
	if len(c.Time) != len(c.Volts) {
		t.Errorf("time axis length %d != volts length %d", len(c.Time), len(c.Volts))
	}
}

func TestSynthSessionGain(t *testing.T) {
	s := NewSynthSession(SynthConfig{
		Samples: 256,
		Gain:    func(freqHz float64) float64 { return 0.5 },
	})
	if err := s.Configure(context.Background(), 1000); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	c, err := s.Acquire(context.Background(), 1000)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}

	peak := 0.0
	for _, v := range c.Volts {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	if peak > 0.51 {
		t.Errorf("gain not applied: peak %v exceeds 0.5", peak)
	}
}

func TestSynthSessionConfigureErrors(t *testing.T) {
	s := NewSynthSession(SynthConfig{})

	err := s.Configure(context.Background(), -10)
	if err == nil {
		t.Fatal("expected error for negative frequency")
	}
	var instErr *Error
	if !errors.As(err, &instErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if instErr.Code != ErrCodeUnsupported {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupported, instErr.Code)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Configure(cancelled, 1000); err == nil {
		t.Error("expected error for cancelled context")
	}
	if _, err := s.Acquire(cancelled, 1000); err == nil {
		t.Error("expected error for cancelled context")
	}
}
