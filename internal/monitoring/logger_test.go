package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	// Test setting a custom logger
	called := false
	customLogger := func(format string, v ...interface{}) {
		called = true
	}

	SetLogger(customLogger)
	Logf("test message")

	if !called {
		t.Error("Custom logger was not called")
	}

	// Test setting nil logger (should create no-op)
	SetLogger(nil)
	// This should not panic
	Logf("test message")

	// Verify the logger is a no-op by checking it doesn't panic
	// and doesn't call anything
	noOpCalled := false
	testLogger := func(format string, v ...interface{}) {
		noOpCalled = true
	}
	SetLogger(testLogger)
	// First verify our test logger works
	Logf("test")
	if !noOpCalled {
		t.Error("Test logger should have been called")
	}

	// Now set to nil and verify it doesn't call our logger
	noOpCalled = false
	SetLogger(nil)
	Logf("test")
	if noOpCalled {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestLogf_Default(t *testing.T) {
	// Test that Logf is not nil by default
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}

	// Test that we can call it without panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Logf panicked: %v", r)
		}
	}()

	Logf("test message: %s", "value")
}

func TestFileWarner(t *testing.T) {
	var got []string
	w := &FileWarner{
		File: "sensor_a.txt",
		Logf: func(format string, v ...interface{}) {
			got = append(got, fmt.Sprintf(format, v...))
		},
	}

	if w.Count() != 0 {
		t.Errorf("new warner Count() = %d, want 0", w.Count())
	}

	w.Warnf(12, "raw entry %q has no '='", "velocity7")
	w.Warnf(40, "detection before any timestamp header")

	if w.Count() != 2 {
		t.Errorf("Count() = %d, want 2", w.Count())
	}
	if len(got) != 2 {
		t.Fatalf("logged %d messages, want 2", len(got))
	}
	want := `warning: sensor_a.txt:12: raw entry "velocity7" has no '='`
	if got[0] != want {
		t.Errorf("first warning = %q, want %q", got[0], want)
	}
}

func TestFileWarnerDefaultLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) { called = true })

	w := &FileWarner{File: "sensor_b.txt"}
	w.Warnf(1, "test")

	if !called {
		t.Error("FileWarner with nil Logf should fall back to the package logger")
	}
}
