// Package registry is the record repository adapter: it reads the
// organization's third-party risk records (vendors, contracts, ICT
// services, functions, subcontractors) from a backing store and maps
// them into Register of Information template rows.
package registry

import "time"

// Organization is the financial entity maintaining the register.
type Organization struct {
	ID                 string  `db:"org_id" json:"org_id"`
	Name               string  `db:"name" json:"name"`
	LEI                string  `db:"lei" json:"lei"`
	Country            string  `db:"country" json:"country"`
	EntityType         string  `db:"entity_type" json:"entity_type"`
	CompetentAuthority string  `db:"competent_authority" json:"competent_authority"`
	BaseCurrency       string  `db:"base_currency" json:"base_currency"`
	TotalAssets        float64 `db:"total_assets" json:"total_assets"`
}

// Vendor is an ICT third-party service provider.
type Vendor struct {
	ID            string  `db:"vendor_id" json:"vendor_id"`
	OrgID         string  `db:"org_id" json:"org_id"`
	Identifier    string  `db:"identifier" json:"identifier"`
	Name          string  `db:"name" json:"name"`
	LEI           string  `db:"lei" json:"lei"`
	Country       string  `db:"country" json:"country"`
	PersonType    string  `db:"person_type" json:"person_type"`
	ParentName    string  `db:"parent_name" json:"parent_name"`
	ParentLEI     string  `db:"parent_lei" json:"parent_lei"`
	ParentCountry string  `db:"parent_country" json:"parent_country"`
	AnnualExpense float64 `db:"annual_expense" json:"annual_expense"`
	Currency      string  `db:"currency" json:"currency"`
}

// Contract is a contractual arrangement with a vendor.
type Contract struct {
	ID                   string     `db:"contract_id" json:"contract_id"`
	OrgID                string     `db:"org_id" json:"org_id"`
	VendorID             string     `db:"vendor_id" json:"vendor_id"`
	Reference            string     `db:"reference" json:"reference"`
	Type                 string     `db:"contract_type" json:"contract_type"`
	OverarchingRef       string     `db:"overarching_ref" json:"overarching_ref"`
	StartDate            time.Time  `db:"start_date" json:"start_date"`
	EndDate              *time.Time `db:"end_date" json:"end_date"`
	GoverningLawCountry  string     `db:"governing_law_country" json:"governing_law_country"`
	NoticePeriodEntity   int        `db:"notice_period_entity" json:"notice_period_entity"`
	NoticePeriodProvider int        `db:"notice_period_provider" json:"notice_period_provider"`
	StoresData           bool       `db:"stores_data" json:"stores_data"`
	DataAtRestCountry    string     `db:"data_at_rest_country" json:"data_at_rest_country"`
	DataMgmtCountry      string     `db:"data_mgmt_country" json:"data_mgmt_country"`
	Sensitiveness        string     `db:"sensitiveness" json:"sensitiveness"`
	AnnualExpense        float64    `db:"annual_expense" json:"annual_expense"`
	Currency             string     `db:"currency" json:"currency"`
}

// Service is one ICT service delivered under a contract.
type Service struct {
	ID               string  `db:"service_id" json:"service_id"`
	OrgID            string  `db:"org_id" json:"org_id"`
	VendorID         string  `db:"vendor_id" json:"vendor_id"`
	ContractID       string  `db:"contract_id" json:"contract_id"`
	Identifier       string  `db:"identifier" json:"identifier"`
	TypeCode         string  `db:"type_code" json:"type_code"`
	SupportsCritical bool    `db:"supports_critical" json:"supports_critical"`
	AnnualCost       float64 `db:"annual_cost" json:"annual_cost"`
	Currency         string  `db:"currency" json:"currency"`
}

// DataLocation records where a service keeps data.
type DataLocation struct {
	ID                string `db:"location_id" json:"location_id"`
	OrgID             string `db:"org_id" json:"org_id"`
	ServiceIdentifier string `db:"service_identifier" json:"service_identifier"`
	Country           string `db:"country" json:"country"`
	Sensitiveness     string `db:"sensitiveness" json:"sensitiveness"`
}

// Function is a business function assessed for criticality.
type Function struct {
	ID               string     `db:"function_id" json:"function_id"`
	OrgID            string     `db:"org_id" json:"org_id"`
	Code             string     `db:"code" json:"code"`
	Name             string     `db:"name" json:"name"`
	LicensedActivity string     `db:"licensed_activity" json:"licensed_activity"`
	Critical         bool       `db:"critical" json:"critical"`
	Reason           string     `db:"reason" json:"reason"`
	LastAssessed     *time.Time `db:"last_assessed" json:"last_assessed"`
	RTOHours         int        `db:"rto_hours" json:"rto_hours"`
	RPOHours         int        `db:"rpo_hours" json:"rpo_hours"`
	Impact           string     `db:"impact" json:"impact"`
}

// Subcontractor is one element of a service supply chain.
type Subcontractor struct {
	ID         string `db:"subcontractor_id" json:"subcontractor_id"`
	OrgID      string `db:"org_id" json:"org_id"`
	ContractID string `db:"contract_id" json:"contract_id"`
	Identifier string `db:"identifier" json:"identifier"`
	Name       string `db:"name" json:"name"`
	LEI        string `db:"lei" json:"lei"`
	IDType     string `db:"id_type" json:"id_type"`
	Rank       int    `db:"rank" json:"rank"`
	Country    string `db:"country" json:"country"`
}

// FunctionService links a function to the ICT service supporting it,
// with the assessment of that dependency.
type FunctionService struct {
	FunctionCode           string     `db:"function_code" json:"function_code"`
	ServiceIdentifier      string     `db:"service_identifier" json:"service_identifier"`
	Substitutability       string     `db:"substitutability" json:"substitutability"`
	NotSubstitutableReason string     `db:"not_substitutable_reason" json:"not_substitutable_reason"`
	LastAudit              *time.Time `db:"last_audit" json:"last_audit"`
	ExitPlan               bool       `db:"exit_plan" json:"exit_plan"`
	Reintegration          string     `db:"reintegration" json:"reintegration"`
	Impact                 string     `db:"impact" json:"impact"`
	Alternatives           bool       `db:"alternatives" json:"alternatives"`
}
