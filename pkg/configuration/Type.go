package configuration

import "time"

type Configuration struct {
	LogLevel string  `yaml:"logLevel"`
	Server   *Server `yaml:"server"`
	Client   *Client `yaml:"client"`
	Paths    *Paths  `yaml:"paths"`
}

type Server struct {
	BindAddress string        `yaml:"bindAddress" validate:"required"`
	Port        int           `yaml:"port" validate:"required,gte=1,lte=65535"`
	MaxSessions int           `yaml:"maxSessions" validate:"gte=1"`
	Command     string        `yaml:"command" validate:"required"`
	EnvFile     string        `yaml:"envFile"`
	Grace       time.Duration `yaml:"grace"`
}

type Client struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required,gte=1,lte=65535"`
}

// Paths is forwarded to server children through the DELTA_* environment
// so spawned sessions open the same folders the operator configured.
type Paths struct {
	New      string `yaml:"new"`
	Old      string `yaml:"old"`
	Keywords string `yaml:"keywords"`
}
