// Package modkit provides module wiring and core deps
package modkit

import (
	"civlink/internal/modkit/repokit"
	"civlink/internal/platform/config"
	"civlink/internal/platform/logger"
	"civlink/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is the primary store (online identities, links, snapshots)
	PG repokit.TxRunner

	// Registry is the authoritative civil-registry store (read side)
	Registry repokit.TxRunner

	CH store.Clickhouse
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional stores
func (d Deps) ZeroOK() bool { return true }
