package ptyio

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func waitNotRunning(t *testing.T, e *Endpoint, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !e.IsRunning() {
			return
		}
		e.ReceiveOutput(4096, 20*time.Millisecond)
	}
	t.Fatal("process did not exit in time")
}

func TestOpen_InvalidBinaryFails(t *testing.T) {
	_, err := Open([]string{"/no/such/binary-linuxterm-test"}, "/", nil, 24, 80)
	if err == nil {
		t.Fatal("expected an error launching a nonexistent binary")
	}
	if !errors.Is(err, ErrLaunchFailed) {
		t.Fatalf("expected err to wrap ErrLaunchFailed, got %v", err)
	}
}

func TestOpen_EmptyArgvFails(t *testing.T) {
	_, err := Open(nil, "/", nil, 24, 80)
	if err == nil {
		t.Fatal("expected an error for empty argv")
	}
}

func TestEndpoint_ReceiveOutputGetsData(t *testing.T) {
	e, err := Open([]string{"/bin/echo", "hello-linuxterm"}, "/", nil, 24, 80)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	var collected []byte
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		out, ok := e.ReceiveOutput(4096, 200*time.Millisecond)
		if ok {
			collected = append(collected, out...)
		}
		if bytes.Contains(collected, []byte("hello-linuxterm")) {
			return
		}
	}
	t.Fatalf("never saw expected output, got %q", collected)
}

func TestEndpoint_ReceiveOutputTimesOutWithNoData(t *testing.T) {
	e, err := Open([]string{"/bin/sleep", "1"}, "/", nil, 24, 80)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	_, ok := e.ReceiveOutput(4096, 50*time.Millisecond)
	if ok {
		t.Fatal("expected a timeout with a quiet child")
	}
	e.Stop()
}

func TestEndpoint_ExitStatusAfterNormalExit(t *testing.T) {
	e, err := Open([]string{"/bin/sh", "-c", "exit 3"}, "/", nil, 24, 80)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	waitNotRunning(t, e, 3*time.Second)

	code, signal := e.ExitStatus()
	if code != 3 || signal != "" {
		t.Fatalf("exit status = (%d, %q), want (3, \"\")", code, signal)
	}
}

func TestEndpoint_StopKillsRunningProcess(t *testing.T) {
	e, err := Open([]string{"/bin/sleep", "30"}, "/", nil, 24, 80)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer e.Close()

	if !e.IsRunning() {
		t.Fatal("expected the process to be running right after Open")
	}

	done := make(chan struct{})
	go func() {
		e.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return in time")
	}
	if e.IsRunning() {
		t.Fatal("expected the process to be stopped")
	}
}

func TestEndpoint_UpdateScreenSizeSucceeds(t *testing.T) {
	e, err := Open([]string{"/bin/sleep", "1"}, "/", nil, 24, 80)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() {
		e.Stop()
		e.Close()
	}()

	if err := e.UpdateScreenSize(30, 100); err != nil {
		t.Fatalf("UpdateScreenSize: %v", err)
	}
}
