package subtitle

import (
	"bufio"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var srtTimestampRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// FormatTimestamp converts seconds to the SRT time format HH:MM:SS,mmm.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(math.Round(seconds * 1000))

	hours := ms / 3600000
	ms %= 3600000
	minutes := ms / 60000
	ms %= 60000
	secs := ms / 1000
	ms %= 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, ms)
}

// EncodeSRT renders a document in SRT format: index line, timestamp
// line, cue text, blank line. An empty document encodes to an empty
// string.
func EncodeSRT(doc Document) string {
	var b strings.Builder
	for _, c := range doc.Cues {
		fmt.Fprintf(&b, "%d\n", c.Index)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(c.Start), FormatTimestamp(c.End))
		b.WriteString(c.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// ParseSRT reads SRT content back into a document. Timestamps are
// recovered to millisecond precision.
func ParseSRT(data string) (Document, error) {
	content := strings.ReplaceAll(data, "\r\n", "\n")
	scanner := bufio.NewScanner(strings.NewReader(content))

	var doc Document
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		index, err := strconv.Atoi(line)
		if err != nil {
			return Document{}, fmt.Errorf("invalid cue index %q", line)
		}

		if !scanner.Scan() {
			return Document{}, fmt.Errorf("cue %d: missing timestamp line", index)
		}
		m := srtTimestampRe.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			return Document{}, fmt.Errorf("cue %d: invalid timestamp line %q", index, scanner.Text())
		}

		var textLines []string
		for scanner.Scan() {
			text := scanner.Text()
			if strings.TrimSpace(text) == "" {
				break
			}
			textLines = append(textLines, text)
		}

		doc.Cues = append(doc.Cues, Cue{
			Index: index,
			Start: timestampSeconds(m[1:5]),
			End:   timestampSeconds(m[5:9]),
			Text:  strings.Join(textLines, "\n"),
		})
	}
	if err := scanner.Err(); err != nil {
		return Document{}, err
	}

	return doc, nil
}

func timestampSeconds(parts []string) float64 {
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	ms, _ := strconv.Atoi(parts[3])
	return float64(h*3600+m*60+s) + float64(ms)/1000.0
}
