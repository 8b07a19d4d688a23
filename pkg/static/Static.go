package static

import "time"

// Directory Constants
const (
	ROOTDIR   = "deltaterm"
	CONFIGDIR = "config"
	LOGDIR    = "logs"
)

// Default Log Level
const DEFAULT_LOG_LEVEL = "info"

// Network Constants
const (
	DEFAULT_PORT         = 8765
	DEFAULT_BIND_ADDRESS = "127.0.0.1"
	DEFAULT_HOST         = "localhost"
	DEFAULT_MAX_SESSIONS = 10
)

// Terminal Constants
const (
	DEFAULT_ROWS  uint16 = 24
	DEFAULT_COLS  uint16 = 80
	DEFAULT_SHELL        = "/bin/sh"
)

// Environment Constants
const (
	ENV_MODE         = "DELTA_MODE"
	ENV_SERVER       = "DELTA_SERVER"
	ENV_CLIENT       = "DELTA_CLIENT"
	ENV_HOST         = "DELTA_HOST"
	ENV_PORT         = "DELTA_PORT"
	ENV_NEW          = "DELTA_NEW"
	ENV_OLD          = "DELTA_OLD"
	ENV_KEYWORDS     = "DELTA_KEYWORDS"
	ENV_SERVER_CHILD = "DELTA_SERVER_CHILD"
)

// Mode Constants
const (
	MODE_SERVER = "server"
	MODE_CLIENT = "client"
)

// Timeout Constants
const (
	TERMINATE_GRACE = 3 * time.Second
	DRAIN_TIMEOUT   = 5 * time.Second
)
