// Package config loads the browser's settings from ~/.config/kpcc/config.toml
// and KPCC_* environment variables.
//
// # Resolution
//
// Load reads the TOML file (a missing file is not an error), overlays any
// non-empty environment variables, then fills defaults for whatever is still
// unset. Environment values win over the file.
//
// # TOML Format
//
//	base_url = "https://www.scpr.org/api/v3/"
//	debug = "basic"                 # disabled | basic | verbose
//	user_agent = "kpcc-tui/0.1"
//	request_timeout_seconds = 10
//	log_file = "~/.local/state/kpcc/kpcc.log"
//	log_level = "info"
//	article_types = ["news", "blogs"]
//	article_limit = 20
//	list_context = "homepage"
//	settings_context = "app"
//	member_token = ""
//
// Every field is optional. The matching environment variable is the field
// name upper-cased with a KPCC_ prefix, e.g. KPCC_BASE_URL. List values in
// the environment are comma separated.
//
// Paths accept a leading ~ and are made absolute.
package config
