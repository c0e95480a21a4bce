package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vtembed/linuxterm/internal/term/emulator"
)

// fakeEmulator is a minimal stand-in for the Emulator Facade (C5).
type fakeEmulator struct {
	mu       sync.Mutex
	fed      [][]byte
	dirty    map[int]emulator.LineUpdate
	resized  []int // rows,cols pairs flattened
	hidden   bool
}

func (f *fakeEmulator) Feed(p []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := append([]byte(nil), p...)
	f.fed = append(f.fed, cp)
}
func (f *fakeEmulator) Resize(rows, cols int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resized = append(f.resized, rows, cols)
}
func (f *fakeEmulator) DirtyLines() map[int]emulator.LineUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[int]emulator.LineUpdate, len(f.dirty))
	for k, v := range f.dirty {
		out[k] = v
	}
	return out
}
func (f *fakeEmulator) ClearDirty() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dirty = map[int]emulator.LineUpdate{}
}
func (f *fakeEmulator) Cursor() (int, int) { return 0, 0 }
func (f *fakeEmulator) CursorHidden() bool { return f.hidden }
func (f *fakeEmulator) ColorMap(rows []int) map[int]map[int]emulator.ColorRun {
	return nil
}

// fakePTY is a minimal stand-in for the PTY Endpoint (C6).
type fakePTY struct {
	mu        sync.Mutex
	queued    [][]byte
	running   bool
	stopped   bool
	exitCode  int
	exitSig   string
	resizeReq []int
}

func (p *fakePTY) ReceiveOutput(max int, timeout time.Duration) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queued) == 0 {
		return nil, false
	}
	out := p.queued[0]
	p.queued = p.queued[1:]
	return out, true
}
func (p *fakePTY) UpdateScreenSize(rows, cols int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizeReq = append(p.resizeReq, rows, cols)
	return nil
}
func (p *fakePTY) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
func (p *fakePTY) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.running = false
}
func (p *fakePTY) ExitStatus() (int, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode, p.exitSig
}

// fakeView is a minimal stand-in for the C9 view adapter.
type fakeView struct {
	mu        sync.Mutex
	flushes   int
	lastDirty map[int]emulator.LineUpdate
	closed    bool
	sizeRows  int
	sizeCols  int
	sizeOnce  bool // report "changed" exactly once
}

func (v *fakeView) Flush(dirty map[int]emulator.LineUpdate, colorMap map[int]map[int]emulator.ColorRun, cursorRow, cursorCol int, cursorHidden bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.flushes++
	v.lastDirty = dirty
}
func (v *fakeView) Size() (int, int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sizeOnce {
		v.sizeOnce = false
		return v.sizeRows, v.sizeCols, true
	}
	return v.sizeRows, v.sizeCols, false
}
func (v *fakeView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func TestSession_RunTransitionsToDoneWhenChildExits(t *testing.T) {
	emu := &fakeEmulator{dirty: map[int]emulator.LineUpdate{}}
	pty := &fakePTY{running: true, exitCode: 0}
	view := &fakeView{sizeRows: 24, sizeCols: 80}
	sess := New(emu, pty, view)

	go func() {
		time.Sleep(50 * time.Millisecond)
		pty.mu.Lock()
		pty.running = false
		pty.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sess.Run(ctx)

	select {
	case <-sess.Done():
	default:
		t.Fatal("expected Done() to be closed")
	}
	if sess.State() != StateDone {
		t.Fatalf("state = %v, want DONE", sess.State())
	}
	if !pty.stopped {
		t.Fatal("expected pty.Stop() to have been called")
	}
}

func TestSession_RunTransitionsToDoneWhenViewCloses(t *testing.T) {
	emu := &fakeEmulator{dirty: map[int]emulator.LineUpdate{}}
	pty := &fakePTY{running: true}
	view := &fakeView{sizeRows: 24, sizeCols: 80}
	sess := New(emu, pty, view)

	go func() {
		time.Sleep(50 * time.Millisecond)
		view.mu.Lock()
		view.closed = true
		view.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	sess.Run(ctx)

	if sess.State() != StateDone {
		t.Fatalf("state = %v, want DONE", sess.State())
	}
}

func TestSession_TickFeedsOutputAndFlushes(t *testing.T) {
	emu := &fakeEmulator{dirty: map[int]emulator.LineUpdate{0: {Text: "hi"}}}
	pty := &fakePTY{running: true, queued: [][]byte{[]byte("hello")}}
	view := &fakeView{sizeRows: 24, sizeCols: 80}
	sess := New(emu, pty, view)

	sess.tick()

	if len(emu.fed) != 1 || string(emu.fed[0]) != "hello" {
		t.Fatalf("fed = %v, want [\"hello\"]", emu.fed)
	}
	if view.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", view.flushes)
	}
	if _, ok := view.lastDirty[0]; !ok {
		t.Fatal("expected row 0 in the flushed dirty set")
	}
}

func TestSession_TickResizesOnViewSizeChange(t *testing.T) {
	emu := &fakeEmulator{dirty: map[int]emulator.LineUpdate{}}
	pty := &fakePTY{running: true}
	view := &fakeView{sizeRows: 30, sizeCols: 100, sizeOnce: true}
	sess := New(emu, pty, view)

	sess.tick()

	if len(emu.resized) != 2 || emu.resized[0] != 30 || emu.resized[1] != 100 {
		t.Fatalf("resized = %v, want [30 100]", emu.resized)
	}
	if len(pty.resizeReq) != 2 || pty.resizeReq[0] != 30 || pty.resizeReq[1] != 100 {
		t.Fatalf("pty resize = %v, want [30 100]", pty.resizeReq)
	}
}

func TestSession_ShutdownFeedsExitBanner(t *testing.T) {
	emu := &fakeEmulator{dirty: map[int]emulator.LineUpdate{}}
	pty := &fakePTY{running: false, exitCode: 7}
	view := &fakeView{sizeRows: 24, sizeCols: 80}
	sess := New(emu, pty, view)

	sess.shutdown()

	if len(emu.fed) == 0 {
		t.Fatal("expected an exit banner fed into the emulator")
	}
}
