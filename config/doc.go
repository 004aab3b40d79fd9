// Package config loads tasklist configuration with Viper from a YAML/JSON/TOML file,
// environment variables and built-in defaults.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("./config.yaml")
//
// With an empty path the file "config.*" is searched in /etc/tasklist,
// $HOME/.tasklist, the working directory and the executable directory. A missing
// file is not an error in that case; defaults and environment apply.
//
// # Environment Variables
//
// Every key can be overridden with the TASKLIST_ prefix, dots become underscores:
//
//	TASKLIST_CLIENT_BASE_URL=http://tasks.internal/api
//	TASKLIST_DATA_DRIVER=sqlite
//
// # Example
//
//	app_name: tasklist
//	run_mode: release
//	server:
//	  host: 127.0.0.1
//	  port: 3001
//	client:
//	  base_url: http://localhost:3001/api
//	  timeout: 0s
//	logger:
//	  level: 4
//	  format: json
//	  output: stderr
//	data:
//	  driver: sqlite
//	  database:
//	    master:
//	      source: file:tasks.db?_journal_mode=WAL
//	observes:
//	  sentry:
//	    endpoint: ""
//	  tracer:
//	    endpoint: ""
//
// # Hot Reload
//
//	config.Watch(func(cfg *config.Config) { ... })
package config
