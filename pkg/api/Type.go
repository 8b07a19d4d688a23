package api

import (
	"net/http"
	"sync"

	"github.com/delta-vision/deltaterm/pkg/configuration"
	"github.com/delta-vision/deltaterm/pkg/relay"
	"github.com/delta-vision/deltaterm/pkg/version"
)

type Api struct {
	Config   *configuration.Configuration
	Registry *relay.Registry
	Limiter  *Limiter
	Version  *version.Version

	// ChildEnv is the environment injected into every spawned session,
	// built once at startup from the server's own environment.
	ChildEnv []string

	server *http.Server
}

// Limiter caps concurrent sessions so one misbehaving peer cannot
// exhaust PTYs. Rejected connections are told why before the close.
type Limiter struct {
	mutex  sync.Mutex
	max    int
	active map[string]struct{}
}
