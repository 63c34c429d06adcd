package factory

import (
	"errors"
	"math"
	"testing"

	"github.com/panelkit/panelkit/pkg/layout"
)

const eps = 1e-6

func dims(t *testing.T, l *layout.Layout, id string) (w, h float64) {
	t.Helper()
	w, err := l.Width(id)
	if err != nil {
		t.Fatalf("Width(%q): %v", id, err)
	}
	h, err = l.Height(id)
	if err != nil {
		t.Fatalf("Height(%q): %v", id, err)
	}
	return w, h
}

func TestStackBuild(t *testing.T) {
	l, err := Stack{
		Width:   10,
		Heights: []float64{4, 4, 4, 2},
		Margins: Margins{Left: 0.5, Right: 0.5, Top: 0.5, Bottom: 0.5},
		Padding: 0.1,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !l.Solved() {
		t.Fatal("stack is not solved")
	}

	fh, _ := l.FigureHeight()
	if want := 15.3; math.Abs(fh-want) > eps {
		t.Errorf("figure height = %g, want %g", fh, want)
	}
	for _, id := range []string{"0", "1", "2", "3"} {
		w, _ := dims(t, l, id)
		if math.Abs(w-9) > eps {
			t.Errorf("width of %q = %g, want 9", id, w)
		}
	}
}

func TestStackLabels(t *testing.T) {
	l, err := Stack{
		Width:   8,
		Heights: []float64{3, 1},
		Labels:  []string{"map", "colorbar"},
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, h := dims(t, l, "colorbar"); math.Abs(h-1) > eps {
		t.Errorf("height of colorbar = %g, want 1", h)
	}
}

func TestStackErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Stack
	}{
		{"no heights", Stack{Width: 10}},
		{"label mismatch", Stack{Width: 10, Heights: []float64{1, 2}, Labels: []string{"only"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Build error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestGridFixedHeight(t *testing.T) {
	l, err := Grid{
		Rows:        2,
		Columns:     2,
		Width:       10,
		FixedHeight: 8,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Rows split the height, cells split each row's width.
	for _, id := range []string{"r01c01", "r01c02", "r02c01", "r02c02"} {
		w, h := dims(t, l, id)
		if math.Abs(w-5) > eps || math.Abs(h-4) > eps {
			t.Errorf("%q = %g x %g, want 5 x 4", id, w, h)
		}
	}
}

func TestGridAspect(t *testing.T) {
	l, err := Grid{
		Rows:    2,
		Columns: 2,
		Width:   10,
		Aspect:  1,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Square cells of width 5, so the figure height follows as 10.
	w, h := dims(t, l, "r02c01")
	if math.Abs(w-5) > eps || math.Abs(h-5) > eps {
		t.Errorf("r02c01 = %g x %g, want 5 x 5", w, h)
	}
	fh, _ := l.FigureHeight()
	if math.Abs(fh-10) > eps {
		t.Errorf("figure height = %g, want 10", fh)
	}
}

func TestGridLabelFormat(t *testing.T) {
	l, err := Grid{
		Rows:        1,
		Columns:     2,
		Width:       6,
		FixedHeight: 3,
		LabelFormat: "panel-%d-%d",
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := l.Panel("panel-1-2"); err != nil {
		t.Errorf("Panel(panel-1-2): %v", err)
	}
}

func TestGridErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Grid
	}{
		{"no rows", Grid{Columns: 2, Width: 10, FixedHeight: 5}},
		{"neither sizing", Grid{Rows: 2, Columns: 2, Width: 10}},
		{"both sizings", Grid{Rows: 2, Columns: 2, Width: 10, FixedHeight: 5, Aspect: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Build error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestTriangleFixed(t *testing.T) {
	l, err := Triangle{
		Vars:  []string{"a", "b", "c"},
		Dim2D: 4,
		Dim1D: 1,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Three columns: the 1-wide marginal strip plus two 4-wide frames.
	fw, _ := l.FigureWidth()
	fh, _ := l.FigureHeight()
	if math.Abs(fw-9) > eps || math.Abs(fh-9) > eps {
		t.Errorf("figure = %g x %g, want 9 x 9", fw, fh)
	}

	// The 2D panels are squares; the marginals are 1 thick.
	for _, id := range []string{"a-b-2d", "a-c-2d", "c-b-2d"} {
		w, h := dims(t, l, id)
		if math.Abs(w-4) > eps || math.Abs(h-4) > eps {
			t.Errorf("%q = %g x %g, want 4 x 4", id, w, h)
		}
	}
	if _, h := dims(t, l, "a-1d-h"); math.Abs(h-1) > eps {
		t.Errorf("height of a-1d-h = %g, want 1", h)
	}
	if w, _ := dims(t, l, "b-1d-v"); math.Abs(w-1) > eps {
		t.Errorf("width of b-1d-v = %g, want 1", w)
	}

	// Diagonal alignment: each column's top marginal sits under the
	// spacers, so a-b-2d (bottom of column 1) and c-b-2d (bottom of
	// column 2) share their vertical band with b-1d-v.
	gAB, err := l.Geometry("a-b-2d")
	if err != nil {
		t.Fatal(err)
	}
	gCB, err := l.Geometry("c-b-2d")
	if err != nil {
		t.Fatal(err)
	}
	gSide, err := l.Geometry("b-1d-v")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(gAB.Top-gCB.Top) > eps || math.Abs(gAB.Top-gSide.Top) > eps {
		t.Errorf("bottom row misaligned: tops %g, %g, %g", gAB.Top, gCB.Top, gSide.Top)
	}
}

func TestTriangleSharedWidth(t *testing.T) {
	l, err := Triangle{
		Vars:  []string{"x", "y", "z"},
		Dim1D: 1,
		Width: 11,
	}.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// (11 - 1 marginal strip) / 2 columns = 5-unit squares.
	for _, id := range []string{"x-y-2d", "x-z-2d", "z-y-2d"} {
		w, h := dims(t, l, id)
		if math.Abs(w-5) > eps || math.Abs(h-5) > eps {
			t.Errorf("%q = %g x %g, want 5 x 5", id, w, h)
		}
	}
	// Side marginals borrow the square height by name.
	if _, h := dims(t, l, "y-1d-v"); math.Abs(h-5) > eps {
		t.Errorf("height of y-1d-v = %g, want 5", h)
	}
	fh, _ := l.FigureHeight()
	if math.Abs(fh-11) > eps {
		t.Errorf("figure height = %g, want 11", fh)
	}
}

func TestTriangleErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Triangle
	}{
		{"one variable", Triangle{Vars: []string{"a"}, Dim2D: 4, Dim1D: 1}},
		{"no dim1d", Triangle{Vars: []string{"a", "b"}, Dim2D: 4}},
		{"no dim2d", Triangle{Vars: []string{"a", "b"}, Dim1D: 1}},
		{"width too small", Triangle{Vars: []string{"a", "b"}, Dim1D: 1, Width: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Build(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Build error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
