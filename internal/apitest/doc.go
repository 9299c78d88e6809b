// Package apitest serves canned v3 API responses for tests.
package apitest
