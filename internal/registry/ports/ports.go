// Package ports defines shared interfaces for the registry module.
package ports

import (
	"context"

	"subguard/internal/registry/models"
	id "subguard/pkg/domain"
)

// Store is the authoritative subdomain registry. Names compare
// case-insensitively via SubdomainName.Key(). Operations on the same name
// are linearizable; distinct names never block each other beyond the store's
// internal locking.
type Store interface {
	// Exists reports whether an active record holds the name.
	Exists(ctx context.Context, name id.SubdomainName) (bool, error)

	// Insert adds a record. Check and insert are atomic: a concurrent
	// Insert for the same name sees sentinel.ErrAlreadyUsed.
	Insert(ctx context.Context, record *models.DeploymentRecord) error

	// Get returns the record for a name, or sentinel.ErrNotFound.
	Get(ctx context.Context, name id.SubdomainName) (*models.DeploymentRecord, error)

	// Remove revokes a name, or sentinel.ErrNotFound if absent.
	Remove(ctx context.Context, name id.SubdomainName) error

	// All returns every active record in insertion order.
	All(ctx context.Context) ([]*models.DeploymentRecord, error)
}
