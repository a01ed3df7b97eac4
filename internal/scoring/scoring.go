// Package scoring holds the deterministic compliance calculators that
// feed the dashboards: SOC 2 exception scoring, maturity bucketing,
// ICT incident classification and concentration-risk HHI.
//
// The coefficients are project heuristics, not numbers quoted from the
// regulatory text, so every calculator reads them from a Config that
// can be overridden (see internal/config); Defaults returns the
// baseline set the tests pin down.
package scoring

// Config carries the tunable coefficients and thresholds.
type Config struct {
	// Exception scoring: score = type weight x impact weight, plus the
	// remediation bonus when the exception was verified as remediated,
	// capped at 1.0. Higher scores mean more residual credit.
	TypeWeights      map[string]float64 `yaml:"type_weights"`
	ImpactWeights    map[string]float64 `yaml:"impact_weights"`
	RemediationBonus float64            `yaml:"remediation_bonus"`

	// Incident classification thresholds.
	Incident IncidentThresholds `yaml:"incident"`

	// HHI risk bands: low below Moderate, moderate below High.
	HHIModerate float64 `yaml:"hhi_moderate"`
	HHIHigh     float64 `yaml:"hhi_high"`
}

// IncidentThresholds are the per-criterion limits for incident
// classification.
type IncidentThresholds struct {
	AffectedClients int     `yaml:"affected_clients"`
	FinancialImpact float64 `yaml:"financial_impact"`
	DurationMinutes int     `yaml:"duration_minutes"`
	GeoSpread       int     `yaml:"geo_spread"`
	MajorCriteria   int     `yaml:"major_criteria"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		TypeWeights: map[string]float64{
			"design_deficiency":    0.3,
			"operating_failure":    0.5,
			"population_deviation": 0.7,
			"documentation_gap":    0.9,
		},
		ImpactWeights: map[string]float64{
			"high":   0.4,
			"medium": 0.6,
			"low":    0.8,
		},
		RemediationBonus: 0.3,
		Incident: IncidentThresholds{
			AffectedClients: 10000,
			FinancialImpact: 100000,
			DurationMinutes: 120,
			GeoSpread:       3,
			MajorCriteria:   3,
		},
		HHIModerate: 1500,
		HHIHigh:     2500,
	}
}

// ExceptionScore scores a SOC 2 test exception. Unknown types and
// impacts score the lowest credit of their table, keeping the result
// conservative.
func (c Config) ExceptionScore(excType, impact string, remediationVerified bool) float64 {
	tw, ok := c.TypeWeights[excType]
	if !ok {
		tw = minWeight(c.TypeWeights)
	}
	iw, ok := c.ImpactWeights[impact]
	if !ok {
		iw = minWeight(c.ImpactWeights)
	}

	score := tw * iw
	if remediationVerified {
		score += c.RemediationBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func minWeight(table map[string]float64) float64 {
	min := 1.0
	for _, w := range table {
		if w < min {
			min = w
		}
	}
	return min
}

// MaturityLevel buckets a compliance percentage into the five maturity
// bands 0-4.
func MaturityLevel(pct float64) int {
	switch {
	case pct < 20:
		return 0
	case pct < 40:
		return 1
	case pct < 60:
		return 2
	case pct < 80:
		return 3
	default:
		return 4
	}
}

// Incident is one ICT incident to classify.
type Incident struct {
	AffectedClients          int
	FinancialImpact          float64
	DurationMinutes          int
	CountriesAffected        int
	DataBreached             bool
	CriticalServicesAffected bool
}

// Classification labels.
const (
	IncidentMajor       = "major"
	IncidentSignificant = "significant"
	IncidentMinor       = "minor"
)

// ClassifyIncident counts how many classification criteria the
// incident meets: major at MajorCriteria or more, significant at one
// or two, minor otherwise.
func (c Config) ClassifyIncident(in Incident) string {
	met := 0
	if in.AffectedClients >= c.Incident.AffectedClients {
		met++
	}
	if in.FinancialImpact >= c.Incident.FinancialImpact {
		met++
	}
	if in.DurationMinutes >= c.Incident.DurationMinutes {
		met++
	}
	if in.CountriesAffected >= c.Incident.GeoSpread {
		met++
	}
	if in.DataBreached {
		met++
	}
	if in.CriticalServicesAffected {
		met++
	}

	switch {
	case met >= c.Incident.MajorCriteria:
		return IncidentMajor
	case met >= 1:
		return IncidentSignificant
	default:
		return IncidentMinor
	}
}

// HHI computes the Herfindahl-Hirschman concentration index over
// percentage market shares: sum((share/100)^2) * 10000.
func HHI(shares []float64) float64 {
	sum := 0.0
	for _, s := range shares {
		f := s / 100
		sum += f * f
	}
	return sum * 10000
}

// Concentration risk bands.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
)

// HHIRisk maps an index value onto the configured risk bands.
func (c Config) HHIRisk(hhi float64) string {
	switch {
	case hhi < c.HHIModerate:
		return RiskLow
	case hhi < c.HHIHigh:
		return RiskModerate
	default:
		return RiskHigh
	}
}
