package registry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStoreWithDB(db), mock
}

func TestStoreOrganization(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"org_id", "name", "lei", "country", "entity_type",
		"competent_authority", "base_currency", "total_assets",
	}).AddRow("org-1", "Nordbank AG", "529900T8BM49AURSDO55", "DE",
		"credit_institution", "BaFin", "EUR", 1250000000.0)

	mock.ExpectQuery("SELECT org_id, name, lei, country").
		WithArgs("org-1").
		WillReturnRows(rows)

	org, err := store.Organization(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("Organization failed: %v", err)
	}
	if org.LEI != "529900T8BM49AURSDO55" {
		t.Errorf("LEI = %s", org.LEI)
	}
	if org.Country != "DE" {
		t.Errorf("Country = %s", org.Country)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreOrganizationNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT org_id, name, lei, country").
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"org_id"}))

	if _, err := store.Organization(context.Background(), "absent"); err == nil {
		t.Error("expected error for unknown org")
	}
}

func TestStoreVendors(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"vendor_id", "org_id", "identifier", "name", "lei", "country", "person_type",
		"parent_name", "parent_lei", "parent_country", "annual_expense", "currency",
	}).
		AddRow("vnd-1", "org-1", "TPP-0001", "CloudCore", "213800WSGIIZCXF1P572", "IE",
			"non_financial_entity", "", "", "", 480000.0, "EUR").
		AddRow("vnd-2", "org-1", "TPP-0002", "NetHost", "", "DE",
			"", "", "", "", 90000.0, "EUR")

	mock.ExpectQuery("FROM roi.vendors WHERE org_id").
		WithArgs("org-1").
		WillReturnRows(rows)

	vendors, err := store.Vendors(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("Vendors failed: %v", err)
	}
	if len(vendors) != 2 {
		t.Fatalf("got %d vendors, want 2", len(vendors))
	}
	if vendors[1].Identifier != "TPP-0002" {
		t.Errorf("vendors[1].Identifier = %s", vendors[1].Identifier)
	}
}

func TestStoreFunctionServices(t *testing.T) {
	store, mock := newMockStore(t)

	audit := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"function_code", "service_identifier", "substitutability",
		"not_substitutable_reason", "last_audit", "exit_plan",
		"reintegration", "impact", "alternatives",
	}).AddRow("F-001", "SVC-0001", "difficult", "", audit, true, "difficult", "high", true)

	mock.ExpectQuery("FROM roi.function_services fs").
		WithArgs("org-1").
		WillReturnRows(rows)

	links, err := store.FunctionServices(context.Background(), "org-1")
	if err != nil {
		t.Fatalf("FunctionServices failed: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].FunctionCode != "F-001" || !links[0].ExitPlan {
		t.Errorf("unexpected link: %+v", links[0])
	}
}

func TestStoreInitDB(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("CREATE SCHEMA IF NOT EXISTS roi").WillReturnResult(sqlmock.NewResult(0, 0))
	for i := 0; i < 8; i++ {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	if err := store.InitDB(context.Background()); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
