package importer_test

import (
	"math"
	"testing"

	"fourtrack/internal/importer"
)

func TestNewCropWindowCoversSourceCapped(t *testing.T) {
	short := importer.NewCropWindow(10, 360)
	if short.Start() != 0 || short.End() != 10 {
		t.Fatalf("short window [%v, %v], want [0, 10]", short.Start(), short.End())
	}

	long := importer.NewCropWindow(400, 360)
	if long.Start() != 0 || long.End() != 360 {
		t.Fatalf("long window [%v, %v], want [0, 360]", long.Start(), long.End())
	}
}

func TestCropHandlesClampInsideSource(t *testing.T) {
	crop := importer.NewCropWindow(10, 360)

	crop.SetStart(-5)
	if crop.Start() != 0 {
		t.Fatalf("start = %v, want 0", crop.Start())
	}
	crop.SetEnd(99)
	if crop.End() != 10 {
		t.Fatalf("end = %v, want 10", crop.End())
	}

	crop.SetStart(2)
	crop.SetEnd(5)
	if crop.Start() != 2 || crop.End() != 5 {
		t.Fatalf("window [%v, %v], want [2, 5]", crop.Start(), crop.End())
	}
	if crop.Duration() != 3 {
		t.Fatalf("duration = %v, want 3", crop.Duration())
	}
}

func TestCropHandlesKeepMinimumWidth(t *testing.T) {
	crop := importer.NewCropWindow(10, 360)
	crop.SetStart(4)
	crop.SetEnd(6)

	crop.SetStart(5.95)
	if math.Abs(crop.Start()-5.9) > 1e-9 {
		t.Fatalf("start = %v, want clamped 5.9", crop.Start())
	}

	crop.SetEnd(crop.Start())
	if math.Abs(crop.End()-(crop.Start()+0.1)) > 1e-9 {
		t.Fatalf("end = %v, want %v", crop.End(), crop.Start()+0.1)
	}
}

func TestWideningPastCeilingDragsOtherBound(t *testing.T) {
	// 400 s source with a 360 s ceiling: pushing the end right drags the
	// start forward, and pulling the start left drags the end back.
	crop := importer.NewCropWindow(400, 360)

	crop.SetEnd(400)
	if crop.Start() != 40 || crop.End() != 400 {
		t.Fatalf("window [%v, %v], want [40, 400]", crop.Start(), crop.End())
	}

	crop.SetStart(0)
	if crop.Start() != 0 || crop.End() != 360 {
		t.Fatalf("window [%v, %v], want [0, 360]", crop.Start(), crop.End())
	}
}
