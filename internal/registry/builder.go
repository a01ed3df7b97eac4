package registry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"dora-roi/internal/esa"
	"dora-roi/internal/templates"
)

const dateLayout = "2006-01-02"

// BuildOptions parameterize one package build.
type BuildOptions struct {
	// RefPeriod is the reporting reference date.
	RefPeriod time.Time

	// DecimalsInteger and DecimalsMonetary default to 0 and 2.
	DecimalsInteger  int
	DecimalsMonetary int
}

// Builder maps register records into Register of Information template
// rows. Enumeration cells go through the vocabulary registry; a logical
// value the registry does not know is written through verbatim so the
// validation engine reports it instead of the build failing.
type Builder struct {
	src   RegisterSource
	enums *esa.Registry
}

// NewBuilder returns a builder over the given register source.
func NewBuilder(src RegisterSource, enums *esa.Registry) *Builder {
	return &Builder{src: src, enums: enums}
}

// BuildPackage loads the organization's records and assembles the full
// template package for the reference period.
func (b *Builder) BuildPackage(ctx context.Context, orgID string, opts BuildOptions) (*templates.Package, error) {
	org, err := b.src.Organization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	vendors, err := b.src.Vendors(ctx, orgID)
	if err != nil {
		return nil, err
	}
	contracts, err := b.src.Contracts(ctx, orgID)
	if err != nil {
		return nil, err
	}
	services, err := b.src.Services(ctx, orgID)
	if err != nil {
		return nil, err
	}
	locations, err := b.src.DataLocations(ctx, orgID)
	if err != nil {
		return nil, err
	}
	functions, err := b.src.Functions(ctx, orgID)
	if err != nil {
		return nil, err
	}
	subcontractors, err := b.src.Subcontractors(ctx, orgID)
	if err != nil {
		return nil, err
	}
	links, err := b.src.FunctionServices(ctx, orgID)
	if err != nil {
		return nil, err
	}

	decInt, decMon := opts.DecimalsInteger, opts.DecimalsMonetary
	if decMon == 0 {
		decMon = 2
	}
	pkg := templates.NewPackage(templates.Meta{
		EntityLEI:        org.LEI,
		EntityCountry:    org.Country,
		RefPeriod:        opts.RefPeriod,
		BaseCurrency:     org.BaseCurrency,
		DecimalsInteger:  decInt,
		DecimalsMonetary: decMon,
	})

	vendorByID := make(map[string]Vendor, len(vendors))
	for _, v := range vendors {
		vendorByID[v.ID] = v
	}
	contractByID := make(map[string]Contract, len(contracts))
	firstContractRef := make(map[string]string)
	for _, c := range contracts {
		contractByID[c.ID] = c
		if _, seen := firstContractRef[c.VendorID]; !seen {
			firstContractRef[c.VendorID] = c.Reference
		}
	}
	servicesByContract := make(map[string][]Service)
	for _, s := range services {
		servicesByContract[s.ContractID] = append(servicesByContract[s.ContractID], s)
	}

	refDate := opts.RefPeriod.Format(dateLayout)

	if err := pkg.Append(templates.B0101, map[string]string{
		"c0010": org.LEI,
		"c0020": org.Name,
		"c0030": b.enum(esa.Country, org.Country),
		"c0040": b.enum(esa.EntityType, org.EntityType),
		"c0050": org.CompetentAuthority,
		"c0060": refDate,
	}); err != nil {
		return nil, fmt.Errorf("registry: build B_01.01: %w", err)
	}

	if err := pkg.Append(templates.B0102, map[string]string{
		"c0010": org.LEI,
		"c0020": org.Name,
		"c0030": b.enum(esa.Country, org.Country),
		"c0040": b.enum(esa.EntityType, org.EntityType),
		"c0070": refDate,
		"c0100": b.enum(esa.Currency, org.BaseCurrency),
		"c0110": money(org.TotalAssets, decMon),
	}); err != nil {
		return nil, fmt.Errorf("registry: build B_01.02: %w", err)
	}

	// B_01.03 stays empty: the register models a single entity without
	// branches. The template still ships as a header-only file.

	for _, c := range contracts {
		if err := pkg.Append(templates.B0201, map[string]string{
			"c0010": c.Reference,
			"c0020": b.enum(esa.ContractType, c.Type),
			"c0030": c.OverarchingRef,
			"c0040": b.enum(esa.Currency, c.Currency),
			"c0050": money(c.AnnualExpense, decMon),
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_02.01: %w", err)
		}

		vendor := vendorByID[c.VendorID]
		cells := map[string]string{
			"c0010": c.Reference,
			"c0020": org.LEI,
			"c0030": vendor.Identifier,
			"c0040": b.identifierType(vendor.LEI),
			"c0060": c.StartDate.Format(dateLayout),
			"c0080": b.enum(esa.Country, c.GoverningLawCountry),
			"c0090": strconv.Itoa(c.NoticePeriodEntity),
			"c0100": strconv.Itoa(c.NoticePeriodProvider),
			"c0110": b.boolean(c.StoresData),
		}
		if svcs := servicesByContract[c.ID]; len(svcs) > 0 {
			cells["c0050"] = b.enum(esa.ServiceType, svcs[0].TypeCode)
		}
		if c.EndDate != nil {
			cells["c0070"] = c.EndDate.Format(dateLayout)
		}
		if c.StoresData {
			cells["c0120"] = b.enum(esa.Country, c.DataAtRestCountry)
			cells["c0130"] = b.enum(esa.Country, c.DataMgmtCountry)
			cells["c0140"] = b.enum(esa.Sensitiveness, c.Sensitiveness)
		}
		if err := pkg.Append(templates.B0202, cells); err != nil {
			return nil, fmt.Errorf("registry: build B_02.02: %w", err)
		}

		if err := pkg.Append(templates.B0303, map[string]string{
			"c0010": c.Reference,
			"c0020": org.LEI,
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_03.03: %w", err)
		}
	}

	// B_02.03 stays empty: intra-group arrangements are out of scope of
	// the single-entity register.

	for _, v := range vendors {
		if err := pkg.Append(templates.B0301, map[string]string{
			"c0010": v.Identifier,
			"c0020": firstContractRef[v.ID],
			"c0030": b.identifierType(v.LEI),
			"c0040": v.Name,
			"c0050": b.enum(esa.Country, v.Country),
			"c0060": b.enum(esa.Currency, v.Currency),
			"c0070": money(v.AnnualExpense, decMon),
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_03.01: %w", err)
		}

		if v.ParentName != "" {
			if err := pkg.Append(templates.B0302, map[string]string{
				"c0010": v.Identifier,
				"c0020": v.ParentLEI,
				"c0030": b.identifierType(v.ParentLEI),
				"c0040": v.ParentName,
				"c0050": b.enum(esa.Country, v.ParentCountry),
			}); err != nil {
				return nil, fmt.Errorf("registry: build B_03.02: %w", err)
			}
		}

		idCells := map[string]string{
			"c0010": v.Identifier,
			"c0020": v.LEI,
			"c0030": v.Name,
			"c0040": b.enum(esa.Country, v.Country),
		}
		if v.PersonType != "" {
			idCells["c0050"] = b.enum(esa.EntityType, v.PersonType)
		}
		if err := pkg.Append(templates.B0501, idCells); err != nil {
			return nil, fmt.Errorf("registry: build B_05.01: %w", err)
		}

		if err := pkg.Append(templates.B9901, map[string]string{
			"c0010": v.Identifier,
			"c0020": b.identifierType(v.LEI),
			"c0030": v.LEI,
			"c0040": v.Name,
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_99.01: %w", err)
		}
	}

	for _, s := range services {
		if err := pkg.Append(templates.B0401, map[string]string{
			"c0010": s.Identifier,
			"c0020": vendorByID[s.VendorID].Identifier,
			"c0030": b.enum(esa.ServiceType, s.TypeCode),
			"c0040": b.boolean(s.SupportsCritical),
			"c0050": b.enum(esa.Currency, s.Currency),
			"c0060": money(s.AnnualCost, decMon),
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_04.01: %w", err)
		}
	}

	for _, sc := range subcontractors {
		if err := pkg.Append(templates.B0502, map[string]string{
			"c0010": sc.Identifier,
			"c0020": contractByID[sc.ContractID].Reference,
			"c0030": sc.Name,
			"c0040": b.enum(esa.IdentifierType, sc.IDType),
			"c0050": strconv.Itoa(sc.Rank),
			"c0060": b.enum(esa.Country, sc.Country),
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_05.02: %w", err)
		}
	}

	for _, f := range functions {
		cells := map[string]string{
			"c0010": f.Code,
			"c0020": f.Name,
			"c0030": f.LicensedActivity,
			"c0040": b.boolean(f.Critical),
			"c0050": f.Reason,
			"c0070": strconv.Itoa(f.RTOHours),
			"c0080": strconv.Itoa(f.RPOHours),
			"c0090": b.enum(esa.ImpactLevel, f.Impact),
		}
		if f.LastAssessed != nil {
			cells["c0060"] = f.LastAssessed.Format(dateLayout)
		}
		if err := pkg.Append(templates.B0601, cells); err != nil {
			return nil, fmt.Errorf("registry: build B_06.01: %w", err)
		}
	}

	for _, link := range links {
		cells := map[string]string{
			"c0010": assessmentID(link.FunctionCode, link.ServiceIdentifier),
			"c0020": link.FunctionCode,
			"c0030": link.ServiceIdentifier,
			"c0040": b.enum(esa.Substitutability, link.Substitutability),
			"c0050": link.NotSubstitutableReason,
			"c0070": b.boolean(link.ExitPlan),
			"c0080": b.enum(esa.Reintegration, link.Reintegration),
			"c0090": b.enum(esa.ImpactLevel, link.Impact),
			"c0100": b.boolean(link.Alternatives),
		}
		if link.LastAudit != nil {
			cells["c0060"] = link.LastAudit.Format(dateLayout)
		}
		if err := pkg.Append(templates.B0701, cells); err != nil {
			return nil, fmt.Errorf("registry: build B_07.01: %w", err)
		}
	}

	for _, loc := range locations {
		if err := pkg.Append(templates.B9902, map[string]string{
			"c0010": loc.ID,
			"c0020": loc.ServiceIdentifier,
			"c0030": b.enum(esa.Country, loc.Country),
			"c0040": b.enum(esa.Sensitiveness, loc.Sensitiveness),
		}); err != nil {
			return nil, fmt.Errorf("registry: build B_99.02: %w", err)
		}
	}

	return pkg, nil
}

// enum encodes a logical value through the vocabulary registry. Empty
// stays empty; an unknown value passes through verbatim and is left for
// the validation engine to report.
func (b *Builder) enum(cat esa.Category, logical string) string {
	if logical == "" {
		return ""
	}
	code, ok := b.enums.Encode(cat, logical)
	if !ok {
		return logical
	}
	return code
}

func (b *Builder) boolean(v bool) string {
	if v {
		return b.enum(esa.Boolean, "true")
	}
	return b.enum(esa.Boolean, "false")
}

// identifierType returns the provider code qualifier: LEI when one is
// on file, otherwise the generic scheme.
func (b *Builder) identifierType(lei string) string {
	if lei != "" {
		return b.enum(esa.IdentifierType, "lei")
	}
	return b.enum(esa.IdentifierType, "other")
}

// assessmentID derives a stable assessment identifier from the link it
// describes, so repeated exports of the same register agree byte for
// byte.
func assessmentID(functionCode, serviceIdentifier string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(functionCode+"/"+serviceIdentifier)).String()
}

func money(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
