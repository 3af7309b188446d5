package modkit

import (
	"testing"

	"civlink/internal/platform/config"
)

func TestDeps_ZeroValue_IsOK(t *testing.T) {
	t.Parallel()

	var d Deps
	if !d.ZeroOK() {
		t.Fatal("zero-value Deps should be usable in tests")
	}
}

func TestDeps_PartialWiring_IsOK(t *testing.T) {
	t.Parallel()

	// modules nil check PG/Registry/CH themselves, so a Conf-only
	// Deps must still report usable
	d := Deps{
		Cfg: config.New(),
	}

	if !d.ZeroOK() {
		t.Fatal("partially wired Deps should report ZeroOK == true")
	}
}
