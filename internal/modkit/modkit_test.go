// Package modkit provides building blocks for modular Go applications
package modkit

import (
	"testing"

	phttp "civlink/internal/platform/net/http"
)

// records whether the module surface was exercised
type stub struct {
	mounted bool
	ports   any
}

func (s *stub) MountRoutes(_ phttp.Router) { s.mounted = true }
func (s *stub) Ports() any                 { return s.ports }
func (s *stub) Name() string               { return "" }

var _ Module = (*stub)(nil)

func TestModule_InterfaceSurface(t *testing.T) {
	t.Parallel()

	m := &stub{ports: "resolve-ports"}

	// typed nil router is enough to drive the call flow
	var r phttp.Router
	m.MountRoutes(r)

	if !m.mounted {
		t.Fatal("MountRoutes was not called")
	}
	if got := m.Ports(); got != "resolve-ports" {
		t.Fatalf("Ports() = %v", got)
	}
}

func TestBuilder_TypeSignatureAndUse(t *testing.T) {
	t.Parallel()

	var b Builder = func(_ Deps, _ ...Option) Module {
		return &stub{ports: "linking-ports"}
	}

	m := b(Deps{})
	if m == nil {
		t.Fatal("builder returned nil module")
	}
	if p := m.Ports(); p != "linking-ports" {
		t.Fatalf("Ports() = %v", p)
	}
}
