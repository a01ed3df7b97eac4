package registry

import (
	"context"
	"fmt"
)

// RegisterSource is the read boundary the package builder works
// against. Both the Postgres store and the JSON mock store implement
// it; everything downstream of the builder is pure computation.
type RegisterSource interface {
	Close() error

	Organization(ctx context.Context, orgID string) (*Organization, error)
	Vendors(ctx context.Context, orgID string) ([]Vendor, error)
	Contracts(ctx context.Context, orgID string) ([]Contract, error)
	Services(ctx context.Context, orgID string) ([]Service, error)
	DataLocations(ctx context.Context, orgID string) ([]DataLocation, error)
	Functions(ctx context.Context, orgID string) ([]Function, error)
	Subcontractors(ctx context.Context, orgID string) ([]Subcontractor, error)
	FunctionServices(ctx context.Context, orgID string) ([]FunctionService, error)
}

// StoreType selects the RegisterSource implementation.
type StoreType string

const (
	PostgresStore StoreType = "postgresql"
	MockStore     StoreType = "mock"
)

// Config selects and parameterizes the register source.
type Config struct {
	Type             StoreType
	ConnectionString string
	MockDataPath     string
}

// NewSource constructs the register source described by cfg.
func NewSource(cfg Config) (RegisterSource, error) {
	switch cfg.Type {
	case MockStore:
		return NewMockSource(cfg.MockDataPath)
	case PostgresStore:
		return NewStore(cfg.ConnectionString)
	default:
		return nil, fmt.Errorf("registry: unknown store type %q", cfg.Type)
	}
}
