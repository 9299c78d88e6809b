// Package kpcc is a client for the KPCC content API (v3).
//
// # Overview
//
// The API serves articles, programs, episodes, events, curated lists, the
// broadcast schedule, member lookups, article categories and per-app
// settings as JSON. Each call on a Client issues exactly one GET and decodes
// the response into the types in this package. There is no caching and no
// retrying; callers own both.
//
// # Pipeline
//
// Every call runs the same three stages:
//
//   - query.go: per-resource query structs build a relative path and an
//     ordered parameter list (types=news,blogs&limit=20)
//   - client.go: the path is resolved against the base URL and fetched
//   - decode.go: the body is parsed and the named envelope field unwrapped
//
// resources.go composes them into one method per resource.
//
// # Client Usage
//
//	client, err := kpcc.NewClient(kpcc.WithUserAgent("myapp/1.0"))
//	if err != nil {
//		log.Fatalf("create client: %v", err)
//	}
//
//	articles, err := client.Articles(ctx, kpcc.ArticleQuery{
//		Types: []string{kpcc.TypeNews, kpcc.TypeBlogs},
//		Limit: 20,
//	})
//
// Calls block until the response is decoded or ctx ends. Async wraps any
// call in a Future for callers that want to start several at once and
// collect results later on their own goroutine.
//
// # Lists
//
// A List carries a "type" discriminator naming the schema of its items. The
// decoder picks Article, Program or Episode from it; an unknown discriminator
// or an item that does not fit the named schema fails the whole list.
// Marshaling a List writes the discriminator back out.
//
// # Errors
//
// Failures are *Error values with one of four kinds:
//
//   - KindBuildComponents: the path or parameters could not form a URL
//   - KindDataUnavailable: the request failed, returned status >= 400, or
//     returned an empty body
//   - KindDecoding: the body was JSON but not the expected shape
//   - KindOther: anything else, such as a body that is not JSON
//
// Match them with errors.Is against ErrBuildComponents, ErrDataUnavailable,
// ErrDecoding and ErrOther, or with KindOf.
//
// # Debugging
//
// SetDebugLevel(DebugBasic) logs each resolved URL to the logger given with
// WithLogger; DebugVerbose adds response bodies. Records carry the request's
// X-Request-Id.
package kpcc
