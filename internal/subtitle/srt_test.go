package subtitle

import (
	"math"
	"testing"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{61.123, "00:01:01,123"},
		{3600, "01:00:00,000"},
		{3661.999, "01:01:01,999"},
		{0.083, "00:00:00,083"},
		{7200.5, "02:00:00,500"},
		{-1, "00:00:00,000"}, // clamped
	}

	for _, tt := range tests {
		got := FormatTimestamp(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestEncodeSRT(t *testing.T) {
	doc := Document{Cues: []Cue{
		{Index: 1, Start: 0.0, End: 0.9, Text: "Hello world"},
		{Index: 2, Start: 1.0, End: 1.5, Text: "today"},
	}}

	want := "1\n00:00:00,000 --> 00:00:00,900\nHello world\n\n" +
		"2\n00:00:01,000 --> 00:00:01,500\ntoday\n\n"

	if got := EncodeSRT(doc); got != want {
		t.Errorf("EncodeSRT =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeSRT_EmptyDocument(t *testing.T) {
	if got := EncodeSRT(Document{}); got != "" {
		t.Errorf("empty document encoded to %q, want empty string", got)
	}
}

func TestSRTRoundTrip(t *testing.T) {
	doc := Document{Cues: []Cue{
		{Index: 1, Start: 0.0, End: 0.933, Text: "Hello world"},
		{Index: 2, Start: 1.0, End: 1.5, Text: "two\nlines"},
		{Index: 3, Start: 3661.042, End: 3665.999, Text: "later"},
	}}

	parsed, err := ParseSRT(EncodeSRT(doc))
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}

	if len(parsed.Cues) != len(doc.Cues) {
		t.Fatalf("got %d cues, want %d", len(parsed.Cues), len(doc.Cues))
	}

	for i, want := range doc.Cues {
		got := parsed.Cues[i]
		if got.Index != want.Index || got.Text != want.Text {
			t.Errorf("cue %d = %+v, want %+v", i, got, want)
		}
		// Round-trip holds to millisecond precision.
		if math.Abs(got.Start-want.Start) > 0.0005 || math.Abs(got.End-want.End) > 0.0005 {
			t.Errorf("cue %d timing = %v..%v, want %v..%v", i, got.Start, got.End, want.Start, want.End)
		}
	}
}

func TestParseSRT_CRLF(t *testing.T) {
	data := "1\r\n00:00:00,000 --> 00:00:01,000\r\nhi\r\n\r\n"
	doc, err := ParseSRT(data)
	if err != nil {
		t.Fatalf("ParseSRT: %v", err)
	}
	if len(doc.Cues) != 1 || doc.Cues[0].Text != "hi" {
		t.Errorf("got %+v", doc.Cues)
	}
}

func TestParseSRT_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage index", "abc\n00:00:00,000 --> 00:00:01,000\nhi\n\n"},
		{"bad timestamp", "1\n00:00 --> 00:01\nhi\n\n"},
		{"missing timestamp line", "1\n"},
	}

	for _, tt := range tests {
		if _, err := ParseSRT(tt.data); err == nil {
			t.Errorf("%s: expected error, got nil", tt.name)
		}
	}
}
