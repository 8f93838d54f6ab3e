package subtitle

import "math"

// Quantize snaps every cue boundary to the nearest frame for the given
// frame rate. A cue that would collapse to zero or negative duration
// after rounding is extended to a minimum of one frame.
func Quantize(doc Document, frameRate float64) Document {
	if frameRate <= 0 {
		return doc
	}

	frame := 1.0 / frameRate
	cues := make([]Cue, len(doc.Cues))
	for i, c := range doc.Cues {
		c.Start = math.Round(c.Start*frameRate) / frameRate
		c.End = math.Round(c.End*frameRate) / frameRate
		if c.End <= c.Start {
			c.End = c.Start + frame
		}
		cues[i] = c
	}

	return Document{Cues: cues}
}
