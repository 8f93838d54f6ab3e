package subtitle

import "strings"

// SegmentFixed partitions words into consecutive groups of wordsPerCue
// words (the final group may be shorter). Cue timing spans from the
// first word's start to the last word's end; text is the words joined
// with single spaces in original order.
func SegmentFixed(words []Word, wordsPerCue int) Document {
	if wordsPerCue < 1 {
		wordsPerCue = 1
	}

	var cues []Cue
	for i := 0; i < len(words); i += wordsPerCue {
		end := i + wordsPerCue
		if end > len(words) {
			end = len(words)
		}
		group := words[i:end]

		texts := make([]string, len(group))
		for j, w := range group {
			texts[j] = w.Text
		}

		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: group[0].Start,
			End:   group[len(group)-1].End,
			Text:  strings.Join(texts, " "),
		})
	}

	return Document{Cues: cues}
}

// SegmentNatural emits one cue per engine segment. Boundaries come from
// the segment itself, not from its constituent words. Segments with no
// text are skipped so cue indices stay contiguous.
func SegmentNatural(segments []Segment) Document {
	var cues []Cue
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		cues = append(cues, Cue{
			Index: len(cues) + 1,
			Start: s.Start,
			End:   s.End,
			Text:  text,
		})
	}
	return Document{Cues: cues}
}
