package viewadapter

import "testing"

func TestComputeSize_BasicGrid(t *testing.T) {
	cols, rows := ComputeSize(800, 600, 8, 16, Margins{})
	if cols != 100 || rows != 37 {
		t.Fatalf("ComputeSize = (%d,%d), want (100,37)", cols, rows)
	}
}

func TestComputeSize_MarginsSubtracted(t *testing.T) {
	cols, rows := ComputeSize(800, 600, 8, 16, Margins{RightMargin: 2, BottomMargin: 1})
	if cols != 98 || rows != 36 {
		t.Fatalf("ComputeSize = (%d,%d), want (98,36)", cols, rows)
	}
}

func TestComputeSize_FloorsPartialCells(t *testing.T) {
	cols, rows := ComputeSize(805, 615, 8, 16, Margins{})
	if cols != 100 || rows != 38 {
		t.Fatalf("ComputeSize = (%d,%d), want (100,38)", cols, rows)
	}
}

func TestComputeSize_ClampsToAtLeastOne(t *testing.T) {
	cols, rows := ComputeSize(10, 10, 8, 16, Margins{RightMargin: 5, BottomMargin: 5})
	if cols != 1 || rows != 1 {
		t.Fatalf("ComputeSize = (%d,%d), want (1,1)", cols, rows)
	}
}
