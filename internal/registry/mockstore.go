package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// MockSource reads the register records from JSON fixture files in a
// directory. It serves demos and tests without a database.
type MockSource struct {
	dir string
}

// NewMockSource validates that dir exists and returns the fixture
// backed source.
func NewMockSource(dir string) (*MockSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("registry: mock data path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("registry: mock data path %s is not a directory", dir)
	}
	return &MockSource{dir: dir}, nil
}

// Close is a no-op for the fixture source.
func (m *MockSource) Close() error { return nil }

func loadFixture[T any](dir, name string) (T, error) {
	var out T
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			// Missing fixture means an empty record set.
			return out, nil
		}
		return out, fmt.Errorf("registry: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("registry: parse %s: %w", name, err)
	}
	return out, nil
}

func (m *MockSource) Organization(_ context.Context, orgID string) (*Organization, error) {
	org, err := loadFixture[*Organization](m.dir, "organization.json")
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, fmt.Errorf("registry: organization %s not found", orgID)
	}
	if orgID != "" && org.ID != orgID {
		return nil, fmt.Errorf("registry: organization %s not found", orgID)
	}
	return org, nil
}

func (m *MockSource) Vendors(_ context.Context, orgID string) ([]Vendor, error) {
	all, err := loadFixture[[]Vendor](m.dir, "vendors.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(v Vendor) string { return v.OrgID }), nil
}

func (m *MockSource) Contracts(_ context.Context, orgID string) ([]Contract, error) {
	all, err := loadFixture[[]Contract](m.dir, "contracts.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(c Contract) string { return c.OrgID }), nil
}

func (m *MockSource) Services(_ context.Context, orgID string) ([]Service, error) {
	all, err := loadFixture[[]Service](m.dir, "services.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(s Service) string { return s.OrgID }), nil
}

func (m *MockSource) DataLocations(_ context.Context, orgID string) ([]DataLocation, error) {
	all, err := loadFixture[[]DataLocation](m.dir, "data_locations.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(d DataLocation) string { return d.OrgID }), nil
}

func (m *MockSource) Functions(_ context.Context, orgID string) ([]Function, error) {
	all, err := loadFixture[[]Function](m.dir, "functions.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(f Function) string { return f.OrgID }), nil
}

func (m *MockSource) Subcontractors(_ context.Context, orgID string) ([]Subcontractor, error) {
	all, err := loadFixture[[]Subcontractor](m.dir, "subcontractors.json")
	if err != nil {
		return nil, err
	}
	return filterByOrg(all, orgID, func(s Subcontractor) string { return s.OrgID }), nil
}

func (m *MockSource) FunctionServices(_ context.Context, _ string) ([]FunctionService, error) {
	return loadFixture[[]FunctionService](m.dir, "function_services.json")
}

// filterByOrg keeps records for orgID. An empty orgID keeps everything,
// matching the single-tenant fixture layout.
func filterByOrg[T any](records []T, orgID string, key func(T) string) []T {
	if orgID == "" {
		return records
	}
	var out []T
	for _, r := range records {
		if key(r) == orgID || key(r) == "" {
			out = append(out, r)
		}
	}
	return out
}
