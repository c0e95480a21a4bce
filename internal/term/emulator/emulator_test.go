package emulator

import "testing"

func TestFacade_FeedRendersDirtyLines(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	f.Feed([]byte("hi"))

	dirty := f.DirtyLines()
	row, ok := dirty[0]
	if !ok || row.Deleted || row.Text != "hi        " {
		t.Fatalf("row 0 = %+v, ok=%v", row, ok)
	}
	if !f.Modified() {
		t.Fatal("expected Modified() true after Feed")
	}
}

func TestFacade_ClearDirty(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	f.Feed([]byte("hi"))
	f.ClearDirty()

	if f.Modified() {
		t.Fatal("expected Modified() false after ClearDirty")
	}
	if len(f.DirtyLines()) != 0 {
		t.Fatal("expected no dirty lines after ClearDirty")
	}
}

func TestFacade_ResizeShrinkReportsDeletedRows(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	f.Feed([]byte("hi"))
	f.ClearDirty()

	f.Resize(3, 10)
	dirty := f.DirtyLines()

	for r := 3; r < 5; r++ {
		if !dirty[r].Deleted {
			t.Fatalf("row %d after shrink = %+v, want Deleted", r, dirty[r])
		}
	}
	if dirty[0].Deleted {
		t.Fatalf("row 0 should still be live, got %+v", dirty[0])
	}
}

func TestFacade_ResizeGrowReportsNoDeletes(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	f.Resize(10, 10)
	dirty := f.DirtyLines()
	for r, v := range dirty {
		if v.Deleted {
			t.Fatalf("row %d deleted after grow, unexpected", r)
		}
	}
}

func TestFacade_Cursor(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	f.Feed([]byte("hi"))
	y, x := f.Cursor()
	if y != 0 || x != 2 {
		t.Fatalf("cursor = (%d,%d), want (0,2)", y, x)
	}
	if f.CursorHidden() {
		t.Fatal("cursor should be visible by default")
	}
}

func TestFacade_CursorHiddenWhileScrolledUp(t *testing.T) {
	f := New(5, 10, 20, 0.5)
	for i := 0; i < 20; i++ {
		f.Feed([]byte("line\r\n"))
	}
	f.PrevPage()
	if !f.CursorHidden() {
		t.Fatal("expected cursor hidden once scrolled away from the live screen")
	}
	f.NextPage()
}

func TestFacade_ColorMapSkipsBaseline(t *testing.T) {
	f := New(2, 10, 20, 0.5)
	f.Feed([]byte("plain"))

	cm := f.ColorMap([]int{0})
	if runs, ok := cm[0]; ok {
		t.Fatalf("expected no runs for default-colored text, got %+v", runs)
	}
}

func TestFacade_ColorMapEmitsNonBaselineRun(t *testing.T) {
	f := New(2, 10, 20, 0.5)
	f.Feed([]byte("\x1b[31mred\x1b[0mplain"))

	cm := f.ColorMap([]int{0})
	runs, ok := cm[0]
	if !ok {
		t.Fatal("expected a run map for row 0")
	}
	run, ok := runs[0]
	if !ok || run.FG != "red" || run.BG != baselineBG || run.FieldLength != 3 {
		t.Fatalf("run at col 0 = %+v, ok=%v", run, ok)
	}
	if _, ok := runs[3]; ok {
		t.Fatal("plain-colored tail should not produce a run")
	}
}

func TestFacade_ColorMapHonorsReverseSwap(t *testing.T) {
	f := New(2, 10, 20, 0.5)
	f.Feed([]byte("\x1b[7mX"))

	cm := f.ColorMap([]int{0})
	run := cm[0][0]
	if run.BG != "white" || run.FG != "black" {
		t.Fatalf("reversed default cell = %+v, want bg=white fg=black", run)
	}
}

func TestFacade_Title(t *testing.T) {
	f := New(2, 10, 20, 0.5)
	f.Feed([]byte("\x1b]0;my title\x07"))
	if f.Title() != "my title" {
		t.Fatalf("title = %q", f.Title())
	}
}

func TestFacade_ApplicationAndBracketedPasteModes(t *testing.T) {
	f := New(2, 10, 20, 0.5)
	if f.ApplicationModeEnabled() || f.BracketedPasteModeEnabled() {
		t.Fatal("expected both modes off by default")
	}
	f.Feed([]byte("\x1b[?1h\x1b[?2004h"))
	if !f.ApplicationModeEnabled() || !f.BracketedPasteModeEnabled() {
		t.Fatal("expected both modes on after enabling")
	}
}
