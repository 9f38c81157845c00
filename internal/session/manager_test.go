// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.AutoSaveEnabled {
		t.Error("Default AutoSaveEnabled should be true")
	}
	if cfg.AutoSaveInterval != 30*time.Second {
		t.Errorf("Default AutoSaveInterval = %v, want 30s", cfg.AutoSaveInterval)
	}
}

// =============================================================================
// MANAGER CREATION TESTS
// =============================================================================

func TestNewManager(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m == nil {
		t.Fatal("NewManager returned nil")
	}

	// Check session ID format
	if !strings.HasPrefix(m.SessionID(), "sess_") {
		t.Errorf("SessionID should start with 'sess_', got %q", m.SessionID())
	}

	// Check times are set
	if m.StartTime().IsZero() {
		t.Error("StartTime should not be zero")
	}
}

func TestNewManager_ZeroInterval(t *testing.T) {
	m := NewManager(Config{AutoSaveEnabled: true})

	m.MarkDirty()
	if m.ShouldAutoSave() {
		t.Error("Zero interval should fall back to default, not save immediately")
	}
}

// =============================================================================
// SESSION STATE TESTS
// =============================================================================

func TestManager_SessionID(t *testing.T) {
	m := NewManager(DefaultConfig())
	id1 := m.SessionID()
	id2 := m.SessionID()

	if id1 != id2 {
		t.Error("SessionID should be consistent")
	}
	if id1 == "" {
		t.Error("SessionID should not be empty")
	}
}

func TestManager_Duration(t *testing.T) {
	m := NewManager(DefaultConfig())
	time.Sleep(10 * time.Millisecond)

	duration := m.Duration()
	if duration < 10*time.Millisecond {
		t.Errorf("Duration should be at least 10ms, got %v", duration)
	}
}

func TestManager_IdleTime(t *testing.T) {
	m := NewManager(DefaultConfig())
	time.Sleep(10 * time.Millisecond)

	idle := m.IdleTime()
	if idle < 10*time.Millisecond {
		t.Errorf("IdleTime should be at least 10ms, got %v", idle)
	}

	// Record activity and check idle resets
	m.RecordActivity()
	idle = m.IdleTime()
	if idle > 5*time.Millisecond {
		t.Errorf("IdleTime should be near zero after RecordActivity, got %v", idle)
	}
}

// =============================================================================
// ACTIVITY TRACKING TESTS
// =============================================================================

func TestManager_DirtyState(t *testing.T) {
	m := NewManager(DefaultConfig())

	if m.IsDirty() {
		t.Error("New session should not be dirty")
	}

	m.MarkDirty()
	if !m.IsDirty() {
		t.Error("Session should be dirty after MarkDirty")
	}

	m.MarkClean()
	if m.IsDirty() {
		t.Error("Session should not be dirty after MarkClean")
	}
}

// =============================================================================
// AUTO-SAVE TESTS
// =============================================================================

func TestManager_ShouldAutoSave(t *testing.T) {
	cfg := Config{AutoSaveEnabled: true, AutoSaveInterval: 20 * time.Millisecond}
	m := NewManager(cfg)

	// Not dirty - should not save
	if m.ShouldAutoSave() {
		t.Error("Should not auto-save when not dirty")
	}

	// Mark dirty
	m.MarkDirty()

	// Wait for interval
	time.Sleep(25 * time.Millisecond)

	if !m.ShouldAutoSave() {
		t.Error("Should auto-save when dirty and interval elapsed")
	}
}

func TestManager_AutoSaveCallback(t *testing.T) {
	cfg := Config{AutoSaveEnabled: true, AutoSaveInterval: 20 * time.Millisecond}
	m := NewManager(cfg)

	called := false
	m.SetAutoSaveCallback(func() error {
		called = true
		return nil
	})

	m.MarkDirty()
	time.Sleep(25 * time.Millisecond)

	if !m.Check() {
		t.Error("Check should report a save")
	}
	if !called {
		t.Error("AutoSave callback should have been called")
	}

	// Should be marked clean after successful save
	if m.IsDirty() {
		t.Error("Session should be clean after successful auto-save")
	}
}

func TestManager_AutoSaveCallbackFailure(t *testing.T) {
	cfg := Config{AutoSaveEnabled: true, AutoSaveInterval: 10 * time.Millisecond}
	m := NewManager(cfg)

	m.SetAutoSaveCallback(func() error {
		return errors.New("disk full")
	})

	m.MarkDirty()
	time.Sleep(15 * time.Millisecond)

	if m.Check() {
		t.Error("Check should report no save when the callback fails")
	}

	// Dirty flag must survive a failed save so the next tick retries.
	if !m.IsDirty() {
		t.Error("Session should stay dirty after failed auto-save")
	}
}

// =============================================================================
// CONFIGURATION TESTS
// =============================================================================

func TestManager_SetAutoSaveEnabled(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.SetAutoSaveEnabled(false)
	m.MarkDirty()

	if m.ShouldAutoSave() {
		t.Error("Should not auto-save when disabled")
	}
}

func TestManager_SetAutoSaveInterval(t *testing.T) {
	cfg := Config{AutoSaveEnabled: true, AutoSaveInterval: 1 * time.Hour}
	m := NewManager(cfg)

	m.SetAutoSaveInterval(10 * time.Millisecond)
	m.MarkDirty()
	time.Sleep(15 * time.Millisecond)

	if !m.ShouldAutoSave() {
		t.Error("Should auto-save after new interval")
	}
}

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestManager_GetStatus(t *testing.T) {
	m := NewManager(DefaultConfig())

	m.MarkDirty()
	time.Sleep(10 * time.Millisecond)

	status := m.GetStatus()

	if status.SessionID == "" {
		t.Error("Status.SessionID should not be empty")
	}
	if status.Duration < 10*time.Millisecond {
		t.Error("Status.Duration should be at least 10ms")
	}
	if status.IdleTime < 10*time.Millisecond {
		t.Error("Status.IdleTime should be at least 10ms")
	}
	if !status.IsDirty {
		t.Error("Status.IsDirty should be true")
	}
}

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m"},
		{5*time.Minute + 30*time.Second, "5m 30s"},
	}

	for _, tc := range tests {
		got := FormatDuration(tc.input)
		if got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// CONCURRENCY TESTS
// =============================================================================

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager(DefaultConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = m.SessionID()
				_ = m.Duration()
				_ = m.IdleTime()
				_ = m.IsDirty()
				m.RecordActivity()
				m.MarkDirty()
				m.MarkClean()
			}
		}()
	}
	wg.Wait()
}
