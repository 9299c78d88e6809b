package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Attr is one key/value pair from a record, value rendered as text.
type Attr struct {
	Key   string
	Value string
}

// Entry is a parsed log record.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   []Attr // sorted by key
	Raw     string
}

// Attr returns the value for key.
func (e Entry) Attr(key string) (string, bool) {
	a, ok := lo.Find(e.Attrs, func(a Attr) bool { return a.Key == key })
	return a.Value, ok
}

// Parse decodes one JSON log line. Lines that are not JSON objects come back
// with only Message and Raw set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil || rec == nil {
		entry.Message = strings.TrimSpace(line)
		return entry
	}

	if ts, ok := rec["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			entry.Time = parsed
		}
	}
	if level, ok := rec["level"].(string); ok {
		entry.Level = strings.ToUpper(level)
	}
	if msg, ok := rec["msg"].(string); ok {
		entry.Message = msg
	}

	keys := lo.Filter(lo.Keys(rec), func(k string, _ int) bool {
		return k != "time" && k != "level" && k != "msg"
	})
	slices.Sort(keys)
	entry.Attrs = lo.Map(keys, func(k string, _ int) Attr {
		return Attr{Key: k, Value: render(rec[k])}
	})
	return entry
}

// ReadEntries is Read followed by Parse on every line.
func ReadEntries(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	return lo.Map(lines, func(line string, _ int) Entry { return Parse(line) }), nil
}

func render(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return "null"
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
