package kpcc

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	queryDateLayout = "2006-01-02"

	// MaxScheduleLength is the longest schedule window the API serves.
	MaxScheduleLength = 7 * 24 * time.Hour
)

// SentinelStartDate is sent as start_date when a query only bounds the end
// date; the API rejects an end_date without a paired start_date.
var SentinelStartDate = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// Param is a single query parameter.
type Param struct {
	Name  string
	Value string
}

// Params is an ordered query parameter list. Order is preserved on the wire.
type Params []Param

// Add appends name=value.
func (p *Params) Add(name, value string) {
	*p = append(*p, Param{Name: name, Value: value})
}

// AddString appends name=value when value is not blank.
func (p *Params) AddString(name, value string) {
	if v := strings.TrimSpace(value); v != "" {
		p.Add(name, v)
	}
}

// AddList comma-joins values in caller order, dropping blanks and repeats.
// Nothing is added when no values remain.
func (p *Params) AddList(name string, values []string) {
	cleaned := lo.Uniq(lo.Compact(lo.Map(values, func(v string, _ int) string {
		return strings.TrimSpace(v)
	})))
	if len(cleaned) == 0 {
		return
	}
	p.Add(name, strings.Join(cleaned, ","))
}

// AddInt appends name=value for positive values only; zero means "use the
// API default".
func (p *Params) AddInt(name string, value int) {
	if value > 0 {
		p.Add(name, strconv.Itoa(value))
	}
}

// AddDateRange appends start_date/end_date as UTC calendar dates. An end
// date without a start date pulls in SentinelStartDate.
func (p *Params) AddDateRange(start, end time.Time) {
	if start.IsZero() && !end.IsZero() {
		start = SentinelStartDate
	}
	if !start.IsZero() {
		p.Add("start_date", start.UTC().Format(queryDateLayout))
	}
	if !end.IsZero() {
		p.Add("end_date", end.UTC().Format(queryDateLayout))
	}
}

// Get returns the first value for name.
func (p Params) Get(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}

// Encode renders the parameters in order. Commas separate list values and
// are left unescaped.
func (p Params) Encode() string {
	var b strings.Builder
	for i, param := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeQuery(param.Name))
		b.WriteByte('=')
		b.WriteString(escapeQuery(param.Value))
	}
	return b.String()
}

func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "%2C", ",")
}

// Request is a path relative to the API base plus its query.
type Request struct {
	Path  string
	Query Params
}

// URL parses the request into a relative URL.
func (r Request) URL() (*url.URL, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, fmt.Errorf("empty request path")
	}
	u, err := url.Parse(r.Path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", r.Path, err)
	}
	if u.IsAbs() || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return nil, fmt.Errorf("path %q must be relative to the API base", r.Path)
	}
	u.RawQuery = r.Query.Encode()
	return u, nil
}

// String renders the relative URL, or the raw path if it cannot be parsed.
func (r Request) String() string {
	u, err := r.URL()
	if err != nil {
		return r.Path
	}
	return u.String()
}

// resourcePath joins a collection with one caller-supplied segment.
func resourcePath(collection, segment string) (string, error) {
	trimmed := strings.TrimSpace(segment)
	if trimmed == "" {
		return "", fmt.Errorf("%s: identifier is empty", collection)
	}
	return collection + "/" + url.PathEscape(trimmed), nil
}

// ArticleQuery filters the articles collection.
type ArticleQuery struct {
	Types      []string // e.g. TypeNews, TypeBlogs
	Categories []string // category slugs
	Tags       []string // tag slugs
	Query      string   // full-text search
	StartDate  time.Time
	EndDate    time.Time
	Limit      int
	Page       int
}

// Article type filters accepted by the articles endpoint.
const (
	TypeNews     = "news"
	TypeBlogs    = "blogs"
	TypeSegments = "segments"
	TypeEpisodes = "episodes"
	TypeEvents   = "events"
	TypeQueries  = "queries"
)

func (q ArticleQuery) request() Request {
	var params Params
	params.AddList("types", q.Types)
	params.AddList("categories", q.Categories)
	params.AddList("tags", q.Tags)
	params.AddString("query", q.Query)
	params.AddDateRange(q.StartDate, q.EndDate)
	params.AddInt("limit", q.Limit)
	params.AddInt("page", q.Page)
	return Request{Path: "articles", Query: params}
}

// EpisodeQuery filters the episodes collection.
type EpisodeQuery struct {
	Program string // program slug
	Limit   int
	Page    int
}

func (q EpisodeQuery) request() Request {
	var params Params
	params.AddString("program", q.Program)
	params.AddInt("limit", q.Limit)
	params.AddInt("page", q.Page)
	return Request{Path: "episodes", Query: params}
}

// EventQuery filters the events collection.
type EventQuery struct {
	Types     []EventType
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

func (q EventQuery) request() Request {
	var params Params
	params.AddList("types", lo.Map(q.Types, func(t EventType, _ int) string { return string(t) }))
	params.AddDateRange(q.StartDate, q.EndDate)
	params.AddInt("limit", q.Limit)
	return Request{Path: "events", Query: params}
}

// ListQuery filters the lists collection. An empty Context returns only lists
// without a context.
type ListQuery struct {
	Context string
}

func (q ListQuery) request() Request {
	var params Params
	params.AddString("context", q.Context)
	return Request{Path: "lists", Query: params}
}

// ProgramQuery filters the programs collection.
type ProgramQuery struct {
	AirStatus []AirStatus
}

func (q ProgramQuery) request() Request {
	var params Params
	params.AddList("air_status", lo.Map(q.AirStatus, func(s AirStatus, _ int) string { return string(s) }))
	return Request{Path: "programs", Query: params}
}

// ScheduleQuery selects a schedule window. A zero Start lets the API begin on
// Monday of the current week; a zero Length uses the API default of one week.
type ScheduleQuery struct {
	Start  time.Time
	Length time.Duration
}

func (q ScheduleQuery) request() Request {
	var params Params
	if !q.Start.IsZero() {
		params.Add("start_time", strconv.FormatInt(q.Start.Unix(), 10))
	}
	if seconds := int64(min(q.Length, MaxScheduleLength) / time.Second); seconds > 0 {
		params.Add("length", strconv.FormatInt(seconds, 10))
	}
	return Request{Path: "schedule", Query: params}
}
