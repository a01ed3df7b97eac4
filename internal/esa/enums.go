// Package esa holds the ESA controlled-vocabulary code tables used by the
// Register of Information templates. Logical values (ISO country codes,
// booleans, service type codes) are mapped to the prefixed wire codes the
// xBRL-CSV filing expects, e.g. DE -> eba_GA:DE or true -> eba_BT:x28.
//
// The tables are built once and read-only afterwards; a single Registry is
// shared by the serializer and the validation engine.
package esa

import (
	"fmt"
	"strings"
)

// Category identifies one controlled vocabulary.
type Category string

const (
	Country          Category = "country"
	Currency         Category = "currency"
	Boolean          Category = "boolean"
	EntityType       Category = "entity_type"
	IdentifierType   Category = "identifier_type"
	ServiceType      Category = "service_type"
	ContractType     Category = "contract_type"
	Sensitiveness    Category = "sensitiveness"
	Substitutability Category = "substitutability"
	Reintegration    Category = "reintegration"
	ImpactLevel      Category = "impact_level"
)

// Registry maps logical values to wire codes per category and indexes the
// reverse direction for code validation.
type Registry struct {
	encode map[Category]map[string]string
	codes  map[Category]map[string]bool
}

// NewRegistry builds the full code table set. Call once at startup.
func NewRegistry() *Registry {
	r := &Registry{
		encode: make(map[Category]map[string]string),
		codes:  make(map[Category]map[string]bool),
	}

	for _, cc := range isoCountries() {
		r.add(Country, cc, "eba_GA:"+cc)
	}
	for _, cur := range isoCurrencies() {
		r.add(Currency, cur, "eba_CU:"+cur)
	}

	r.add(Boolean, "true", "eba_BT:x28")
	r.add(Boolean, "false", "eba_BT:x29")

	// Annex IV entity types.
	r.add(EntityType, "credit_institution", "eba_CT:x12")
	r.add(EntityType, "payment_institution", "eba_CT:x599")
	r.add(EntityType, "electronic_money_institution", "eba_CT:x643")
	r.add(EntityType, "investment_firm", "eba_CT:x639")
	r.add(EntityType, "crypto_asset_provider", "eba_CT:x301")
	r.add(EntityType, "central_securities_depository", "eba_CT:x302")
	r.add(EntityType, "insurance_undertaking", "eba_CT:x303")
	r.add(EntityType, "management_company", "eba_CT:x304")
	r.add(EntityType, "other_financial_entity", "eba_CT:x315")
	r.add(EntityType, "non_financial_entity", "eba_CT:x212")

	// Identifier scheme qualifiers.
	r.add(IdentifierType, "lei", "eba_qCO:qx2000")
	r.add(IdentifierType, "eu_id", "eba_qCO:qx2001")
	r.add(IdentifierType, "crn", "eba_qCO:qx2002")
	r.add(IdentifierType, "vat", "eba_qCO:qx2003")
	r.add(IdentifierType, "passport", "eba_qCO:qx2004")
	r.add(IdentifierType, "other", "eba_qCO:qx2999")

	// ICT service type taxonomy S01..S19 (Annex III).
	for i := 1; i <= 19; i++ {
		logical := fmt.Sprintf("S%02d", i)
		r.add(ServiceType, logical, fmt.Sprintf("eba_TA:x%d", i))
	}

	r.add(ContractType, "standalone", "eba_CO:x1")
	r.add(ContractType, "overarching", "eba_CO:x2")
	r.add(ContractType, "subsequent", "eba_CO:x3")

	r.add(Sensitiveness, "low", "eba_SN:x1")
	r.add(Sensitiveness, "medium", "eba_SN:x2")
	r.add(Sensitiveness, "high", "eba_SN:x3")

	r.add(Substitutability, "easy", "eba_SB:x1")
	r.add(Substitutability, "difficult", "eba_SB:x2")
	r.add(Substitutability, "highly_complex", "eba_SB:x3")

	r.add(Reintegration, "easy", "eba_RE:x1")
	r.add(Reintegration, "difficult", "eba_RE:x2")
	r.add(Reintegration, "highly_complex", "eba_RE:x3")

	r.add(ImpactLevel, "low", "eba_IM:x1")
	r.add(ImpactLevel, "medium", "eba_IM:x2")
	r.add(ImpactLevel, "high", "eba_IM:x3")

	return r
}

func (r *Registry) add(cat Category, logical, code string) {
	if r.encode[cat] == nil {
		r.encode[cat] = make(map[string]string)
		r.codes[cat] = make(map[string]bool)
	}
	r.encode[cat][logical] = code
	r.codes[cat][code] = true
}

// Encode translates a logical value into its wire code. An unknown
// category is a programmer error and panics; an unknown value within a
// known category returns ok=false so the caller can surface it as a
// validation finding.
func (r *Registry) Encode(cat Category, logical string) (string, bool) {
	table, known := r.encode[cat]
	if !known {
		panic(fmt.Sprintf("esa: unknown enumeration category %q", cat))
	}
	code, ok := table[logical]
	return code, ok
}

// IsValidCode reports whether code belongs to the given category.
func (r *Registry) IsValidCode(cat Category, code string) bool {
	table, known := r.codes[cat]
	if !known {
		panic(fmt.Sprintf("esa: unknown enumeration category %q", cat))
	}
	return table[code]
}

// Categories lists every category the registry carries.
func (r *Registry) Categories() []Category {
	cats := make([]Category, 0, len(r.encode))
	for c := range r.encode {
		cats = append(cats, c)
	}
	return cats
}

// isoCountries returns the ISO 3166-1 alpha-2 codes accepted by the
// eba_GA dimension, including the EBA's XX placeholder for "other".
func isoCountries() []string {
	return strings.Fields(`
AD AE AF AG AI AL AM AO AR AT AU AW AZ BA BB BD BE BF BG BH BI BJ BM BN
BO BR BS BT BW BY BZ CA CD CF CG CH CI CL CM CN CO CR CU CV CY CZ DE DJ
DK DM DO DZ EC EE EG ER ES ET FI FJ FM FO FR GA GB GD GE GG GH GI GL GM
GN GQ GR GT GW GY HK HN HR HT HU ID IE IL IM IN IQ IR IS IT JE JM JO JP
KE KG KH KI KM KN KP KR KW KY KZ LA LB LC LI LK LR LS LT LU LV LY MA MC
MD ME MG MH MK ML MM MN MO MR MT MU MV MW MX MY MZ NA NE NG NI NL NO NP
NR NZ OM PA PE PG PH PK PL PT PW PY QA RO RS RU RW SA SB SC SD SE SG SI
SK SL SM SN SO SR SS ST SV SY SZ TD TG TH TJ TL TM TN TO TR TT TV TW TZ
UA UG US UY UZ VA VC VE VG VN VU WS YE ZA ZM ZW XX`)
}

// isoCurrencies returns the ISO 4217 codes the filings use in practice.
func isoCurrencies() []string {
	return strings.Fields(`
AED AUD BGN BRL CAD CHF CNY CZK DKK EUR GBP HKD HUF IDR ILS INR ISK JPY
KRW MXN MYR NOK NZD PHP PLN RON RSD SEK SGD THB TRY USD ZAR`)
}
