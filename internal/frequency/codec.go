package frequency

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Format selects the on-disk encoding of a model.
type Format int

const (
	// FormatJSON is a single object {"word": count, ...}.
	FormatJSON Format = iota
	// FormatText is one "word count" pair per line.
	FormatText
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// Parse decodes a model in either format into an Index. Data whose first
// non-space byte is '{' is read as JSON, anything else as text lines.
func Parse(data []byte) (*Index, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return parseJSON(trimmed)
	}
	return parseText(data)
}

func parseJSON(data []byte) (*Index, error) {
	var counts map[string]int64
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil, fmt.Errorf("%w: decode json model: %v", ErrIndexUnavailable, err)
	}
	return NewIndex(counts)
}

func parseText(data []byte) (*Index, error) {
	counts := make(map[string]int64)
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	s := bufio.NewScanner(bytes.NewReader(data))
	s.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		count, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			fv, err2 := strconv.ParseFloat(parts[1], 64)
			if err2 != nil {
				continue
			}
			count = int64(fv)
		}
		counts[parts[0]] += count
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: read text model: %v", ErrIndexUnavailable, err)
	}
	return NewIndex(counts)
}

// Encode writes counts to w in the given format. Text output is sorted by
// count descending, then word ascending.
func Encode(w io.Writer, counts map[string]int64, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "    ")
		return enc.Encode(counts)
	case FormatText:
		bw := bufio.NewWriter(w)
		for _, e := range sortedEntries(counts) {
			if _, err := fmt.Fprintf(bw, "%s %d\n", e.word, e.count); err != nil {
				return err
			}
		}
		return bw.Flush()
	}
	return fmt.Errorf("unknown model format %v", format)
}

type entry struct {
	word  string
	count int64
}

func sortedEntries(counts map[string]int64) []entry {
	out := make([]entry, 0, len(counts))
	for w, c := range counts {
		out = append(out, entry{w, c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count == out[j].count {
			return out[i].word < out[j].word
		}
		return out[i].count > out[j].count
	})
	return out
}
