package subtitle

import (
	"math"
	"testing"
)

func TestQuantize_SnapsToFrameMultiples(t *testing.T) {
	doc := Document{Cues: []Cue{
		{Index: 1, Start: 0.013, End: 0.91, Text: "a"},
		{Index: 2, Start: 1.02, End: 1.49, Text: "b"},
	}}

	const frameRate = 30.0
	out := Quantize(doc, frameRate)

	for _, c := range out.Cues {
		for _, boundary := range []float64{c.Start, c.End} {
			frames := boundary * frameRate
			if math.Abs(frames-math.Round(frames)) > 1e-9 {
				t.Errorf("cue %d boundary %v is not a multiple of 1/%v", c.Index, boundary, frameRate)
			}
		}
		if c.End <= c.Start {
			t.Errorf("cue %d collapsed: start=%v end=%v", c.Index, c.Start, c.End)
		}
	}
}

func TestQuantize_ExtendsCollapsedCue(t *testing.T) {
	// Both boundaries round to the same frame at 10fps.
	doc := Document{Cues: []Cue{{Index: 1, Start: 1.01, End: 1.04, Text: "x"}}}

	out := Quantize(doc, 10)
	c := out.Cues[0]
	if c.Start != 1.0 {
		t.Errorf("start = %v, want 1.0", c.Start)
	}
	if math.Abs(c.End-1.1) > 1e-9 {
		t.Errorf("end = %v, want start + one frame (1.1)", c.End)
	}
}

func TestQuantize_DoesNotReorder(t *testing.T) {
	doc := Document{Cues: []Cue{
		{Index: 1, Start: 0.0, End: 0.5, Text: "a"},
		{Index: 2, Start: 0.5, End: 1.0, Text: "b"},
		{Index: 3, Start: 1.0, End: 1.5, Text: "c"},
	}}

	out := Quantize(doc, 24)
	for i := 1; i < len(out.Cues); i++ {
		if out.Cues[i].Index != out.Cues[i-1].Index+1 {
			t.Fatalf("cue order changed at position %d", i)
		}
		if out.Cues[i].Start < out.Cues[i-1].Start {
			t.Fatalf("cue %d starts before its predecessor", out.Cues[i].Index)
		}
	}
}

func TestQuantize_ConcreteScenario(t *testing.T) {
	ws := []Word{
		{Text: "Hello", Start: 0.0, End: 0.4},
		{Text: "world", Start: 0.5, End: 0.9},
		{Text: "today", Start: 1.0, End: 1.5},
	}

	doc := Quantize(SegmentFixed(ws, 2), 30)
	if len(doc.Cues) != 2 {
		t.Fatalf("got %d cues, want 2", len(doc.Cues))
	}

	c1, c2 := doc.Cues[0], doc.Cues[1]
	if c1.Text != "Hello world" || c2.Text != "today" {
		t.Errorf("cue texts = %q, %q", c1.Text, c2.Text)
	}
	for _, c := range doc.Cues {
		for _, boundary := range []float64{c.Start, c.End} {
			frames := boundary * 30
			if math.Abs(frames-math.Round(frames)) > 1e-9 {
				t.Errorf("boundary %v not snapped to 1/30s", boundary)
			}
		}
	}
	if math.Abs(c1.Start-0.0) > 1.0/30 || math.Abs(c1.End-0.9) > 1.0/30 {
		t.Errorf("cue 1 boundaries drifted: %v..%v", c1.Start, c1.End)
	}
	if math.Abs(c2.Start-1.0) > 1.0/30 || math.Abs(c2.End-1.5) > 1.0/30 {
		t.Errorf("cue 2 boundaries drifted: %v..%v", c2.Start, c2.End)
	}
}
