package startup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/static"
	"github.com/go-playground/assert/v2"
)

func environmentMap(environment []string) map[string]string {
	result := make(map[string]string)

	for _, entry := range environment {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 {
			result[parts[0]] = parts[1]
		}
	}

	return result
}

func TestChildEnvironment(t *testing.T) {
	t.Setenv(static.ENV_MODE, "server")
	t.Setenv(static.ENV_SERVER, "1")
	t.Setenv(static.ENV_CLIENT, "1")
	t.Setenv("UNRELATED", "kept")

	configObj := configuration.NewConfig()
	configObj.Paths.New = "/data/new"
	configObj.Paths.Keywords = "/data/keywords.md"

	environment, err := ChildEnvironment(configObj)
	assert.Equal(t, err, nil)

	envMap := environmentMap(environment)

	assert.Equal(t, envMap[static.ENV_SERVER_CHILD], "true")
	assert.Equal(t, envMap[static.ENV_NEW], "/data/new")
	assert.Equal(t, envMap[static.ENV_KEYWORDS], "/data/keywords.md")
	assert.Equal(t, envMap["UNRELATED"], "kept")

	// Mode toggles never leak into children.
	_, hasMode := envMap[static.ENV_MODE]
	_, hasServer := envMap[static.ENV_SERVER]
	_, hasClient := envMap[static.ENV_CLIENT]

	assert.Equal(t, hasMode, false)
	assert.Equal(t, hasServer, false)
	assert.Equal(t, hasClient, false)

	// Old was not configured, so it is absent.
	_, hasOld := envMap[static.ENV_OLD]
	assert.Equal(t, hasOld, false)
}

func TestChildEnvironmentEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	err := os.WriteFile(path, []byte("EXTRA=from-file\nUNRELATED=overridden\n"), 0644)
	assert.Equal(t, err, nil)

	t.Setenv("UNRELATED", "kept")

	configObj := configuration.NewConfig()
	configObj.Server.EnvFile = path

	environment, err := ChildEnvironment(configObj)
	assert.Equal(t, err, nil)

	envMap := environmentMap(environment)

	assert.Equal(t, envMap["EXTRA"], "from-file")
	assert.Equal(t, envMap["UNRELATED"], "overridden")
}

func TestChildEnvironmentMissingEnvFile(t *testing.T) {
	configObj := configuration.NewConfig()
	configObj.Server.EnvFile = "/does/not/exist/.env"

	_, err := ChildEnvironment(configObj)
	assert.NotEqual(t, err, nil)
}
