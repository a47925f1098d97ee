// Package config provides configuration management for the Klondike server.
//
// Settings live in a TOML file, by default $XDG_CONFIG_HOME/klondike/config.toml:
//
//	[server]
//	host = "localhost"
//	port = 8080
//
//	[sessions]
//	ttl = "30m"
//	cleanup_interval = "1m"
//
//	[game]
//	seed = 0
//
//	[log]
//	debug = false
//
//	[ngrok]
//	enabled = false
//	domain = ""
//
// Keys left out of the file keep their defaults and a missing file means all
// defaults. Unknown keys and out-of-range values are rejected with
// ErrInvalidSettings. Command-line flags and environment variables override
// the file; that layering happens in main.
package config
