package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}
	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "zero", maxLines: 0, expected: nil},
		{name: "negative", maxLines: -1, expected: nil},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || lines != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", lines, err)
	}
}

func TestParse(t *testing.T) {
	line := `{"time":"2026-10-17T09:00:00.5Z","level":"WARN","msg":"refresh failed","op":"articles","attempt":2,"ok":false,"err":{"kind":"x"}}`
	e := Parse(line)
	if !e.Time.Equal(time.Date(2026, 10, 17, 9, 0, 0, 500_000_000, time.UTC)) {
		t.Fatalf("Time = %v", e.Time)
	}
	if e.Level != "WARN" || e.Message != "refresh failed" || e.Raw != line {
		t.Fatalf("entry = %#v", e)
	}
	want := []Attr{{"attempt", "2"}, {"err", `{"kind":"x"}`}, {"ok", "false"}, {"op", "articles"}}
	if !reflect.DeepEqual(e.Attrs, want) {
		t.Fatalf("Attrs = %#v, want %#v", e.Attrs, want)
	}
	if v, ok := e.Attr("op"); !ok || v != "articles" {
		t.Fatalf("Attr(op) = %q, %v", v, ok)
	}
	if _, ok := e.Attr("missing"); ok {
		t.Fatalf("Attr(missing) found")
	}
}

func TestParse_NonJSON(t *testing.T) {
	e := Parse("  panic: runtime error  ")
	if e.Message != "panic: runtime error" || e.Level != "" || len(e.Attrs) != 0 {
		t.Fatalf("entry = %#v", e)
	}
	if e := Parse("null"); e.Message != "null" {
		t.Fatalf("null entry = %#v", e)
	}
}

func TestReadEntries(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "kpcc.log")
	body := `{"level":"INFO","msg":"one"}` + "\n" + `{"level":"ERROR","msg":"two"}` + "\n"
	if err := os.WriteFile(logPath, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := ReadEntries(logPath, 1)
	if err != nil {
		t.Fatalf("ReadEntries returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "two" || entries[0].Level != "ERROR" {
		t.Fatalf("entries = %#v", entries)
	}
}
