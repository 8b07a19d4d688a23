package configuration

import (
	"os"

	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/go-playground/validator/v10"
)

func NewConfig() *Configuration {
	command := os.Getenv("SHELL")
	if command == "" {
		command = static.DEFAULT_SHELL
	}

	return &Configuration{
		LogLevel: static.DEFAULT_LOG_LEVEL,
		Server: &Server{
			BindAddress: static.DEFAULT_BIND_ADDRESS,
			Port:        static.DEFAULT_PORT,
			MaxSessions: static.DEFAULT_MAX_SESSIONS,
			Command:     command,
			Grace:       static.TERMINATE_GRACE,
		},
		Client: &Client{
			Host: static.DEFAULT_HOST,
			Port: static.DEFAULT_PORT,
		},
		Paths: &Paths{},
	}
}

func (configObj *Configuration) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(configObj)
}
