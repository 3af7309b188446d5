// Package module implements the registry service module
package module

import (
	"civlink/internal/modkit"
	"civlink/internal/modkit/httpkit"
	"civlink/internal/modkit/repokit"
	"civlink/internal/services/registry/domain"
	"civlink/internal/services/registry/repo"
	"civlink/internal/services/registry/service"
)

// Ports exposed by the registry module
type Ports struct {
	Reader domain.ReaderPort
}

// Module implements the registry service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new registry module over the authoritative pool
func New(deps modkit.Deps) *Module {
	svc := service.New(repokit.TxRunner(deps.Registry), repo.NewPG())

	m := &Module{deps: deps}
	m.ports = Ports{Reader: svc}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "registry" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {}
