package screen

import "testing"

func TestEdit_InsertCharacters(t *testing.T) {
	s := New(3, 10)
	feed(t, s, "abcde")
	feed(t, s, "\x1b[1;2H\x1b[2@") // ICH n=2 at column 2

	if got := s.RenderRow(0); got != "a  bcde   " {
		t.Fatalf("row after ICH = %q", got)
	}
}

func TestEdit_DeleteCharacters(t *testing.T) {
	s := New(3, 10)
	feed(t, s, "abcde")
	feed(t, s, "\x1b[1;2H\x1b[2P") // DCH n=2 at column 2

	if got := s.RenderRow(0); got != "ade       " {
		t.Fatalf("row after DCH = %q", got)
	}
}

func TestEdit_EraseCharacters(t *testing.T) {
	s := New(3, 10)
	feed(t, s, "abcde")
	feed(t, s, "\x1b[1;2H\x1b[2X") // ECH n=2 at column 2

	if got := s.RenderRow(0); got != "a  de     " {
		t.Fatalf("row after ECH = %q", got)
	}
}

func TestEdit_InsertLines(t *testing.T) {
	s := New(4, 5)
	feed(t, s, "one\r\ntwo\r\nthree\r\nfour")
	feed(t, s, "\x1b[2;1H\x1b[1L") // IL n=1 at row index 1

	if got := s.RenderRow(1); got != "     " {
		t.Fatalf("row 1 after IL should be blank, got %q", got)
	}
	if got := s.RenderRow(2); got != "two  " {
		t.Fatalf("row 2 after IL = %q, want shifted-down \"two\"", got)
	}
	if got := s.RenderRow(3); got != "three" {
		t.Fatalf("row 3 after IL = %q, want shifted-down \"three\" (four discarded)", got)
	}
}

func TestEdit_DeleteLines(t *testing.T) {
	s := New(4, 5)
	feed(t, s, "one\r\ntwo\r\nthree\r\nfour")
	feed(t, s, "\x1b[2;1H\x1b[1M") // DL n=1 at row index 1

	if got := s.RenderRow(1); got != "three" {
		t.Fatalf("row 1 after DL = %q, want shifted-up \"three\"", got)
	}
	if got := s.RenderRow(2); got != "four " {
		t.Fatalf("row 2 after DL = %q, want shifted-up \"four\"", got)
	}
	if got := s.RenderRow(3); got != "     " {
		t.Fatalf("row 3 after DL should be blanked, got %q", got)
	}
}

func TestEdit_EraseInLineVariants(t *testing.T) {
	s := New(1, 5)
	feed(t, s, "abcde")

	s2 := New(1, 5)
	feed(t, s2, "abcde\x1b[1;3H\x1b[0K")
	if got := s2.RenderRow(0); got != "ab   " {
		t.Fatalf("EL(0) = %q, want %q", got, "ab   ")
	}

	s3 := New(1, 5)
	feed(t, s3, "abcde\x1b[1;3H\x1b[1K")
	if got := s3.RenderRow(0); got != "   de" {
		t.Fatalf("EL(1) = %q, want %q", got, "   de")
	}

	s4 := New(1, 5)
	feed(t, s4, "abcde\x1b[1;3H\x1b[2K")
	if got := s4.RenderRow(0); got != "     " {
		t.Fatalf("EL(2) = %q, want blank", got)
	}
}
