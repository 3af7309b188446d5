// Package api provides the HTTP API for the application
package api

import (
	"civlink/internal/platform/config"
	"civlink/internal/platform/logger"
	phttp "civlink/internal/platform/net/http"
	"civlink/internal/platform/store"

	"civlink/internal/modkit"
	"civlink/internal/modkit/httpkit"
	"civlink/internal/modkit/module"
	"civlink/internal/modkit/swaggerkit"

	"civlink/internal/services/linking/gateway"
	linkingmod "civlink/internal/services/linking/module"
	registrymod "civlink/internal/services/registry/module"
	resolvemod "civlink/internal/services/resolve/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Log:      *opt.Logger,
		Cfg:      opt.Config,
		PG:       opt.Store.PG,
		Registry: opt.Store.Registry,
		CH:       opt.Store.CH,
	}

	// registry goes first; its reader port feeds resolve and linking
	regMod := registrymod.New(deps)
	reader := module.MustPortsOf[registrymod.Ports](regMod).Reader

	gw := gateway.New(linkingmod.FromConfig(deps), deps.Log)

	mods := []module.Module{
		regMod,
		resolvemod.New(deps, reader),
		linkingmod.New(deps, reader, gw),
	}

	// versioned API with a common middleware stack
	httpkit.MountUnder(r, "/api/v1", httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
