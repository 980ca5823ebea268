package config

import "time"

// Default constants for application configuration
const (
	AppName                   = "curate"
	DefaultLogLevel           = "info"
	DefaultJSONLog            = false
	DefaultUserAgent          = "Curate/1.0 (https://github.com/law-makers/curate)"
	DefaultHTTPTimeout        = 30 * time.Second
	DefaultConcurrency        = 10
	DefaultMaxConcurrency     = 50
	DefaultMaxLinks           = 2000
	DefaultMode               = "auto"
	DefaultBrowserHeadless    = true
	DefaultMaxBrowserPoolSize = 10
	DefaultJSWaitTime         = 500 * time.Millisecond
	DefaultStateDir           = "."
	DefaultRootURLFile        = "root_url.txt"
	DefaultSelectionFile      = "removal_selections.txt"
	DefaultOutputFile         = "result.txt"
	DefaultOutputFormat       = "text"
	DefaultAutoReplay         = true
	DefaultProgress           = true
	DefaultConfigFile         = ".curate.yaml"
)
