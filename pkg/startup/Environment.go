package startup

import (
	"fmt"
	"os"
	"strings"

	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/joho/godotenv"
)

// ChildEnvironment builds the environment handed to spawned sessions:
// the server's own environment, minus the mode toggles (a child must
// never inherit client/server mode), plus the DELTA_SERVER_CHILD marker,
// the configured DELTA_* paths and any --env-file entries.
func ChildEnvironment(configObj *configuration.Configuration) ([]string, error) {
	merged := make(map[string]string)

	for _, entry := range os.Environ() {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		merged[parts[0]] = parts[1]
	}

	delete(merged, static.ENV_MODE)
	delete(merged, static.ENV_SERVER)
	delete(merged, static.ENV_CLIENT)

	merged[static.ENV_SERVER_CHILD] = "true"

	if configObj.Paths.New != "" {
		merged[static.ENV_NEW] = configObj.Paths.New
	}
	if configObj.Paths.Old != "" {
		merged[static.ENV_OLD] = configObj.Paths.Old
	}
	if configObj.Paths.Keywords != "" {
		merged[static.ENV_KEYWORDS] = configObj.Paths.Keywords
	}

	if configObj.Server.EnvFile != "" {
		fromFile, err := godotenv.Read(configObj.Server.EnvFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			merged[k] = v
		}
	}

	environment := make([]string, 0, len(merged))
	for k, v := range merged {
		environment = append(environment, fmt.Sprintf("%s=%s", k, v))
	}

	return environment, nil
}
