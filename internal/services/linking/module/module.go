// Package module wires the linking coordinator into the API using modkit
package module

import (
	"net/http"
	"time"

	modkit "civlink/internal/modkit"
	"civlink/internal/modkit/httpkit"
	"civlink/internal/modkit/repokit"
	str "civlink/internal/platform/strings"

	"civlink/internal/services/linking/domain"
	"civlink/internal/services/linking/gateway"
	linkinghttp "civlink/internal/services/linking/http"
	linkingrepo "civlink/internal/services/linking/repo"
	linkingsvc "civlink/internal/services/linking/service"
	regdom "civlink/internal/services/registry/domain"
)

// Ports exposed by the linking module
type Ports struct {
	Coordinator domain.CoordinatorPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *linkingsvc.Service
}

// New constructs a linking module; registry reader and gateway are required
func New(deps modkit.Deps, reg regdom.ReaderPort, gw domain.GatewayPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("linking"), modkit.WithPrefix("/identity")}, opts...)...)

	svc := linkingsvc.New(repokit.TxRunner(deps.PG), linkingrepo.NewPG(), reg, gw, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Coordinator: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		linkinghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// FromConfig builds the gateway client config from app configuration
func FromConfig(deps modkit.Deps) gateway.Config {
	cfg := deps.Cfg.Prefix("GATEWAY_")
	return gateway.Config{
		BaseURL:  cfg.MustString("BASE_URL"),
		Timeout:  cfg.MayDuration("TIMEOUT", 15*time.Second),
		Attempts: uint(cfg.MayInt("ATTEMPTS", 3)),
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
