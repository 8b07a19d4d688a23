package startup

import (
	"flag"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func SetFlags() {
	flag.Bool("server", false, "Start the session server")
	flag.Bool("client", false, "Attach the local terminal to a remote session")

	flag.Int("port", static.DEFAULT_PORT, "Port for the server or the client connection")
	flag.String("host", static.DEFAULT_HOST, "Host for the client connection")
	flag.String("bind-address", static.DEFAULT_BIND_ADDRESS, "Bind address for the server (loopback by default)")
	flag.Int("max-connections", static.DEFAULT_MAX_SESSIONS, "Maximum concurrent sessions for the server")

	flag.String("command", "", "Command spawned for each session (defaults to $SHELL)")
	flag.String("env-file", "", "dotenv file merged into the child environment")

	flag.String("new", "", "Path forwarded to children as DELTA_NEW")
	flag.String("old", "", "Path forwarded to children as DELTA_OLD")
	flag.String("keywords", "", "Path forwarded to children as DELTA_KEYWORDS")

	flag.String("config", "", "YAML configuration file applied before flags")
	flag.String("log", static.DEFAULT_LOG_LEVEL, "Log level: debug, info, warn, error")

	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)
}

// Load reads a YAML configuration from the reader over the defaults.
// The file is decoded directly: the mode flags own the "server" and
// "client" keys inside viper, so the file must not pass through it.
func Load(reader io.Reader) (*configuration.Configuration, error) {
	configObj := configuration.NewConfig()

	if err := yaml.NewDecoder(reader).Decode(configObj); err != nil {
		return nil, err
	}

	return configObj, nil
}

func Save(configObj *configuration.Configuration, path string) error {
	yamlObj, err := yaml.Marshal(*configObj)

	if err != nil {
		return err
	}

	return os.WriteFile(path, yamlObj, 0644)
}

// Apply overlays parsed flags onto the configuration. Only flags the
// command line actually set override what is already there, so values
// loaded from --config survive; DELTA_* environment variables then fill
// in anything still untouched.
func Apply(configObj *configuration.Configuration) {
	if changed("log") {
		configObj.LogLevel = viper.GetString("log")
	}

	if changed("bind-address") {
		configObj.Server.BindAddress = viper.GetString("bind-address")
	}
	if changed("port") {
		configObj.Server.Port = viper.GetInt("port")
		configObj.Client.Port = viper.GetInt("port")
	}
	if changed("max-connections") {
		configObj.Server.MaxSessions = viper.GetInt("max-connections")
	}
	if changed("command") {
		configObj.Server.Command = viper.GetString("command")
	}
	if changed("env-file") {
		configObj.Server.EnvFile = viper.GetString("env-file")
	}

	if changed("host") {
		configObj.Client.Host = viper.GetString("host")
	}

	if changed("new") {
		configObj.Paths.New = viper.GetString("new")
	}
	if changed("old") {
		configObj.Paths.Old = viper.GetString("old")
	}
	if changed("keywords") {
		configObj.Paths.Keywords = viper.GetString("keywords")
	}

	applyEnvironmentOverrides(configObj)
}

func applyEnvironmentOverrides(configObj *configuration.Configuration) {
	if configObj.Paths.New == "" {
		configObj.Paths.New = os.Getenv(static.ENV_NEW)
	}
	if configObj.Paths.Old == "" {
		configObj.Paths.Old = os.Getenv(static.ENV_OLD)
	}
	if configObj.Paths.Keywords == "" {
		configObj.Paths.Keywords = os.Getenv(static.ENV_KEYWORDS)
	}

	if port := os.Getenv(static.ENV_PORT); port != "" && !changed("port") {
		if parsed, err := strconv.Atoi(port); err == nil {
			configObj.Server.Port = parsed
			configObj.Client.Port = parsed
		}
	}

	if host := os.Getenv(static.ENV_HOST); host != "" && !changed("host") {
		configObj.Client.Host = host
	}
}

// Mode resolves server/client selection: explicit flags win, then
// DELTA_MODE, then the DELTA_SERVER/DELTA_CLIENT back-compat toggles.
func Mode() string {
	if viper.GetBool("server") {
		return static.MODE_SERVER
	}
	if viper.GetBool("client") {
		return static.MODE_CLIENT
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv(static.ENV_MODE))) {
	case static.MODE_SERVER:
		return static.MODE_SERVER
	case static.MODE_CLIENT:
		return static.MODE_CLIENT
	}

	if truthy(os.Getenv(static.ENV_SERVER)) {
		return static.MODE_SERVER
	}
	if truthy(os.Getenv(static.ENV_CLIENT)) {
		return static.MODE_CLIENT
	}

	return ""
}

func changed(name string) bool {
	f := pflag.CommandLine.Lookup(name)
	return f != nil && f.Changed
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}

	return false
}
