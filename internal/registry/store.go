package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Store is the PostgreSQL-backed register source.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to PostgreSQL and verifies the connection.
func NewStore(connString string) (*Store, error) {
	db, err := sqlx.Connect("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("registry: connect: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB wraps an existing connection, used by tests.
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Organization loads the organization record.
func (s *Store) Organization(ctx context.Context, orgID string) (*Organization, error) {
	var org Organization
	err := s.db.GetContext(ctx, &org, `
		SELECT org_id, name, lei, country, entity_type, competent_authority, base_currency, total_assets
		FROM roi.organizations WHERE org_id = $1`, orgID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("registry: organization %s not found", orgID)
	}
	if err != nil {
		return nil, fmt.Errorf("registry: load organization: %w", err)
	}
	return &org, nil
}

// Vendors lists the organization's ICT third-party service providers.
func (s *Store) Vendors(ctx context.Context, orgID string) ([]Vendor, error) {
	var out []Vendor
	err := s.db.SelectContext(ctx, &out, `
		SELECT vendor_id, org_id, identifier, name, lei, country, person_type,
		       parent_name, parent_lei, parent_country, annual_expense, currency
		FROM roi.vendors WHERE org_id = $1 ORDER BY identifier`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load vendors: %w", err)
	}
	return out, nil
}

// Contracts lists the organization's contractual arrangements.
func (s *Store) Contracts(ctx context.Context, orgID string) ([]Contract, error) {
	var out []Contract
	err := s.db.SelectContext(ctx, &out, `
		SELECT contract_id, org_id, vendor_id, reference, contract_type, overarching_ref,
		       start_date, end_date, governing_law_country, notice_period_entity,
		       notice_period_provider, stores_data, data_at_rest_country, data_mgmt_country,
		       sensitiveness, annual_expense, currency
		FROM roi.contracts WHERE org_id = $1 ORDER BY reference`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load contracts: %w", err)
	}
	return out, nil
}

// Services lists the ICT services delivered under the contracts.
func (s *Store) Services(ctx context.Context, orgID string) ([]Service, error) {
	var out []Service
	err := s.db.SelectContext(ctx, &out, `
		SELECT service_id, org_id, vendor_id, contract_id, identifier, type_code,
		       supports_critical, annual_cost, currency
		FROM roi.ict_services WHERE org_id = $1 ORDER BY identifier`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load services: %w", err)
	}
	return out, nil
}

// DataLocations lists where the services keep data.
func (s *Store) DataLocations(ctx context.Context, orgID string) ([]DataLocation, error) {
	var out []DataLocation
	err := s.db.SelectContext(ctx, &out, `
		SELECT location_id, org_id, service_identifier, country, sensitiveness
		FROM roi.data_locations WHERE org_id = $1 ORDER BY location_id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load data locations: %w", err)
	}
	return out, nil
}

// Functions lists the assessed business functions.
func (s *Store) Functions(ctx context.Context, orgID string) ([]Function, error) {
	var out []Function
	err := s.db.SelectContext(ctx, &out, `
		SELECT function_id, org_id, code, name, licensed_activity, critical, reason,
		       last_assessed, rto_hours, rpo_hours, impact
		FROM roi.functions WHERE org_id = $1 ORDER BY code`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load functions: %w", err)
	}
	return out, nil
}

// Subcontractors lists the supply chain elements.
func (s *Store) Subcontractors(ctx context.Context, orgID string) ([]Subcontractor, error) {
	var out []Subcontractor
	err := s.db.SelectContext(ctx, &out, `
		SELECT subcontractor_id, org_id, contract_id, identifier, name, lei, id_type, rank, country
		FROM roi.subcontractors WHERE org_id = $1 ORDER BY rank, identifier`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load subcontractors: %w", err)
	}
	return out, nil
}

// FunctionServices lists the function-to-service dependency
// assessments.
func (s *Store) FunctionServices(ctx context.Context, orgID string) ([]FunctionService, error) {
	var out []FunctionService
	err := s.db.SelectContext(ctx, &out, `
		SELECT fs.function_code, fs.service_identifier, fs.substitutability,
		       fs.not_substitutable_reason, fs.last_audit, fs.exit_plan,
		       fs.reintegration, fs.impact, fs.alternatives
		FROM roi.function_services fs
		JOIN roi.functions f ON f.code = fs.function_code AND f.org_id = $1
		ORDER BY fs.function_code, fs.service_identifier`, orgID)
	if err != nil {
		return nil, fmt.Errorf("registry: load function services: %w", err)
	}
	return out, nil
}

// InitDB creates the schema and tables. One-time setup helper used by
// the init-db command.
func (s *Store) InitDB(ctx context.Context) error {
	ddl := []string{
		`CREATE SCHEMA IF NOT EXISTS roi`,
		`CREATE TABLE IF NOT EXISTS roi.organizations (
			org_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			lei TEXT NOT NULL,
			country TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			competent_authority TEXT NOT NULL DEFAULT '',
			base_currency TEXT NOT NULL DEFAULT 'EUR',
			total_assets NUMERIC NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS roi.vendors (
			vendor_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			identifier TEXT NOT NULL,
			name TEXT NOT NULL,
			lei TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL,
			person_type TEXT NOT NULL DEFAULT '',
			parent_name TEXT NOT NULL DEFAULT '',
			parent_lei TEXT NOT NULL DEFAULT '',
			parent_country TEXT NOT NULL DEFAULT '',
			annual_expense NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'EUR'
		)`,
		`CREATE TABLE IF NOT EXISTS roi.contracts (
			contract_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			vendor_id UUID NOT NULL REFERENCES roi.vendors(vendor_id),
			reference TEXT NOT NULL,
			contract_type TEXT NOT NULL DEFAULT 'standalone',
			overarching_ref TEXT NOT NULL DEFAULT '',
			start_date DATE NOT NULL,
			end_date DATE,
			governing_law_country TEXT NOT NULL,
			notice_period_entity INT NOT NULL DEFAULT 0,
			notice_period_provider INT NOT NULL DEFAULT 0,
			stores_data BOOLEAN NOT NULL DEFAULT FALSE,
			data_at_rest_country TEXT NOT NULL DEFAULT '',
			data_mgmt_country TEXT NOT NULL DEFAULT '',
			sensitiveness TEXT NOT NULL DEFAULT '',
			annual_expense NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'EUR'
		)`,
		`CREATE TABLE IF NOT EXISTS roi.ict_services (
			service_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			vendor_id UUID NOT NULL REFERENCES roi.vendors(vendor_id),
			contract_id UUID NOT NULL REFERENCES roi.contracts(contract_id),
			identifier TEXT NOT NULL,
			type_code TEXT NOT NULL,
			supports_critical BOOLEAN NOT NULL DEFAULT FALSE,
			annual_cost NUMERIC NOT NULL DEFAULT 0,
			currency TEXT NOT NULL DEFAULT 'EUR'
		)`,
		`CREATE TABLE IF NOT EXISTS roi.data_locations (
			location_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			service_identifier TEXT NOT NULL,
			country TEXT NOT NULL,
			sensitiveness TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS roi.functions (
			function_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			code TEXT NOT NULL,
			name TEXT NOT NULL,
			licensed_activity TEXT NOT NULL DEFAULT '',
			critical BOOLEAN NOT NULL DEFAULT FALSE,
			reason TEXT NOT NULL DEFAULT '',
			last_assessed DATE,
			rto_hours INT NOT NULL DEFAULT 0,
			rpo_hours INT NOT NULL DEFAULT 0,
			impact TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS roi.subcontractors (
			subcontractor_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			org_id UUID NOT NULL REFERENCES roi.organizations(org_id),
			contract_id UUID NOT NULL REFERENCES roi.contracts(contract_id),
			identifier TEXT NOT NULL,
			name TEXT NOT NULL,
			lei TEXT NOT NULL DEFAULT '',
			id_type TEXT NOT NULL DEFAULT 'other',
			rank INT NOT NULL,
			country TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS roi.function_services (
			function_code TEXT NOT NULL,
			service_identifier TEXT NOT NULL,
			substitutability TEXT NOT NULL DEFAULT '',
			not_substitutable_reason TEXT NOT NULL DEFAULT '',
			last_audit DATE,
			exit_plan BOOLEAN NOT NULL DEFAULT FALSE,
			reintegration TEXT NOT NULL DEFAULT '',
			impact TEXT NOT NULL DEFAULT '',
			alternatives BOOLEAN NOT NULL DEFAULT FALSE,
			PRIMARY KEY (function_code, service_identifier)
		)`,
	}

	for _, stmt := range ddl {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("registry: init db: %w", err)
		}
	}
	return nil
}
