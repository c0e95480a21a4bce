// Package ptyio implements the PTY Endpoint (spec C6): opens a
// pseudo-terminal, execs the configured command vector inside it, and
// exposes a poll/push byte interface plus lifecycle control.
//
// Grounded on the teacher's internal/terminal/session.go Start/readLoop/
// waitLoop/Write/Resize/Close, built on the same github.com/aymanbagabas/
// go-pty dependency, generalized from the teacher's channel-signal
// ("OutputCh") design into a buffered, timeout-bounded ReceiveOutput to
// match spec.md §4.6's "readiness-wait up to timeout, then non-blocking
// read up to max bytes" contract.
package ptyio

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"time"

	gopty "github.com/aymanbagabas/go-pty"
)

// ErrLaunchFailed wraps any error from opening the PTY or starting the
// child, surfaced synchronously from Open per spec.md §4.6.
var ErrLaunchFailed = errors.New("ptyio: launch failed")

// Endpoint is one live PTY-backed child process.
type Endpoint struct {
	pty gopty.Pty
	cmd *gopty.Cmd

	mu         sync.Mutex
	buf        []byte
	closed     bool // read side hit EOF/error, or the child has exited
	exited     bool
	exitCode   int
	exitSignal string

	notify   chan struct{} // buffered 1; signals new data or a state change
	exitedCh chan struct{}
}

// Open launches argv[0] with argv[1:] as arguments inside a new PTY of
// size (rows, cols), in directory cwd, with TERM=linux and the caller's
// env appended over the inherited environment. Exec failure (bad cwd,
// missing binary) is returned synchronously, wrapping ErrLaunchFailed;
// the caller (cmd/linuxterm) retries with $HOME then "/".
func Open(argv []string, cwd string, env []string, rows, cols int) (*Endpoint, error) {
	if len(argv) == 0 {
		return nil, errors.New("ptyio: empty command")
	}

	p, err := gopty.New()
	if err != nil {
		return nil, errors.Join(ErrLaunchFailed, err)
	}
	if err := p.Resize(cols, rows); err != nil {
		p.Close()
		return nil, errors.Join(ErrLaunchFailed, err)
	}

	cmd := p.Command(argv[0], argv[1:]...)
	cmd.Dir = cwd
	cmd.Env = append(inheritedEnvWithoutTERM(), "TERM=linux")
	cmd.Env = append(cmd.Env, env...)

	if err := cmd.Start(); err != nil {
		p.Close()
		return nil, errors.Join(ErrLaunchFailed, err)
	}

	e := &Endpoint{
		pty:      p,
		cmd:      cmd,
		notify:   make(chan struct{}, 1),
		exitedCh: make(chan struct{}),
	}
	go e.readLoop()
	go e.waitLoop()
	return e, nil
}

// inheritedEnvWithoutTERM copies the process environment, dropping any
// existing TERM entry so the caller-supplied "TERM=linux" always wins.
func inheritedEnvWithoutTERM() []string {
	src := os.Environ()
	out := make([]string, 0, len(src))
	for _, kv := range src {
		if len(kv) >= 5 && kv[:5] == "TERM=" {
			continue
		}
		out = append(out, kv)
	}
	return out
}

func (e *Endpoint) readLoop() {
	tmp := make([]byte, 4096)
	for {
		n, err := e.pty.Read(tmp)
		if n > 0 {
			e.mu.Lock()
			e.buf = append(e.buf, tmp[:n]...)
			e.mu.Unlock()
			e.signal()
		}
		if err != nil {
			e.mu.Lock()
			e.closed = true
			e.mu.Unlock()
			e.signal()
			return
		}
	}
}

func (e *Endpoint) waitLoop() {
	err := e.cmd.Wait()
	e.mu.Lock()
	ps := e.cmd.ProcessState
	switch {
	case ps != nil:
		if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			e.exitSignal = ws.Signal().String()
			e.exitCode = -1
		} else {
			e.exitCode = ps.ExitCode()
		}
	case err != nil:
		e.exitCode = 1
	}
	e.exited = true
	e.closed = true
	e.mu.Unlock()
	close(e.exitedCh)
	e.signal()
}

func (e *Endpoint) signal() {
	select {
	case e.notify <- struct{}{}:
	default:
	}
}

// ReceiveOutput implements spec.md §4.6's receive_output: waits up to
// timeout for output to become available, then returns up to max bytes
// non-blocking. Returns (nil, false) on timeout, EOF, or child death.
func (e *Endpoint) ReceiveOutput(max int, timeout time.Duration) ([]byte, bool) {
	if max <= 0 {
		return nil, false
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		e.mu.Lock()
		if len(e.buf) > 0 {
			n := max
			if n > len(e.buf) {
				n = len(e.buf)
			}
			out := make([]byte, n)
			copy(out, e.buf[:n])
			e.buf = e.buf[n:]
			e.mu.Unlock()
			return out, true
		}
		closed := e.closed
		e.mu.Unlock()
		if closed {
			return nil, false
		}

		select {
		case <-e.notify:
			continue
		case <-timer.C:
			return nil, false
		}
	}
}

// SendBytes writes to the PTY master. Silently ignored if the child is
// already gone, per spec.md §4.6.
func (e *Endpoint) SendBytes(p []byte) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}
	_, _ = e.pty.Write(p)
}

// UpdateScreenSize implements spec.md §4.6's update_screen_size: a kernel
// TIOCSWINSZ change with zero pixel dimensions. The kernel itself raises
// SIGWINCH to the foreground process group on that ioctl, so no separate
// signal call is needed here.
func (e *Endpoint) UpdateScreenSize(rows, cols int) error {
	return e.pty.Resize(cols, rows)
}

// IsRunning implements spec.md §4.6's is_running: a non-blocking reap —
// the waitLoop goroutine has already done the actual reap; this just
// reports whether it has completed.
func (e *Endpoint) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.exited
}

// Stop implements spec.md §4.6's stop: SIGTERM, up to 200ms grace,
// SIGKILL if the child hasn't exited by then.
func (e *Endpoint) Stop() {
	e.mu.Lock()
	proc := e.cmd.Process
	e.mu.Unlock()
	if proc == nil {
		return
	}

	_ = proc.Signal(syscall.SIGTERM)
	select {
	case <-e.exitedCh:
		return
	case <-time.After(200 * time.Millisecond):
	}

	_ = proc.Kill()
	<-e.exitedCh
}

// Close releases the PTY master side. Callers that want a clean shutdown
// should call Stop first; Close alone does not signal the child.
func (e *Endpoint) Close() error {
	return e.pty.Close()
}

// ExitStatus implements spec.md §4.6's exit_status: valid once IsRunning
// is false. signal is empty unless the child died from a signal, in
// which case code is -1.
func (e *Endpoint) ExitStatus() (code int, signal string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exitCode, e.exitSignal
}
