// Package module wires identity search into the API using modkit
package module

import (
	"net/http"

	modkit "civlink/internal/modkit"
	"civlink/internal/modkit/httpkit"
	str "civlink/internal/platform/strings"

	"civlink/internal/core/match"
	regdom "civlink/internal/services/registry/domain"
	"civlink/internal/services/resolve/domain"
	resolvehttp "civlink/internal/services/resolve/http"
	resolverepo "civlink/internal/services/resolve/repo"
	resolvesvc "civlink/internal/services/resolve/service"
)

// Ports exposed by the resolve module
type Ports struct {
	Searcher domain.SearcherPort
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

	svc *resolvesvc.Service
}

// New constructs a resolve module; the registry reader port is required
func New(deps modkit.Deps, reg regdom.ReaderPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("resolve"), modkit.WithPrefix("/identity")}, opts...)...)

	svc := resolvesvc.New(reg, match.NewScorer(nil), nil, resolverepo.NewCH(deps.CH), deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Searcher: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		resolvehttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
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
