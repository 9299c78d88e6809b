// Package logtail reads the end of the browser's own log file.
//
// Read returns the last N raw lines using a ring buffer, so memory stays
// proportional to N rather than to the file size. A missing file is not an
// error; it simply has no lines yet.
//
// The logger in internal/logging writes one JSON object per line. Parse turns
// such a line into an Entry with the time, level and message pulled out and
// the remaining attributes sorted by key:
//
//	{"time":"2026-10-17T09:00:00Z","level":"INFO","msg":"refresh complete","articles":20}
//
// becomes Entry{Level: "INFO", Message: "refresh complete", Attrs: [{articles 20}]}.
// Lines that are not JSON, such as a panic trace, are kept verbatim as the
// message.
package logtail
