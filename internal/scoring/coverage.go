package scoring

import "sort"

// Control is one extracted SOC 2 control with its Trust Services
// Criteria category (CC1..CC9, A, PI, C, P).
type Control struct {
	ControlID   string
	TSCCategory string
}

// article describes one DORA article and the TSC categories whose
// controls evidence it.
type article struct {
	title         string
	tscCategories []string
	weight        float64
	description   string
}

// doraArticles is the DORA article to TSC mapping matrix.
var doraArticles = map[string]article{
	// Chapter II - ICT risk management
	"Article 5":  {"ICT risk management framework", []string{"CC1", "CC3", "CC4", "CC9"}, 1.0, "Governance and accountability for ICT risk management"},
	"Article 6":  {"ICT systems, protocols and tools", []string{"CC6", "CC7", "CC8", "A"}, 1.0, "ICT systems resilience and protection"},
	"Article 7":  {"Identification", []string{"CC3", "CC6"}, 0.8, "Identification of ICT risks and business functions"},
	"Article 8":  {"Protection and prevention", []string{"CC5", "CC6", "CC7", "C"}, 1.0, "ICT security policies and access controls"},
	"Article 9":  {"Detection", []string{"CC7", "CC4"}, 0.8, "Detection of anomalous activities and incidents"},
	"Article 10": {"Response and recovery", []string{"CC7", "CC9", "A"}, 1.0, "Incident response and recovery procedures"},
	"Article 11": {"Backup policies and procedures", []string{"A", "CC7", "CC9"}, 0.9, "Data backup and restoration"},
	"Article 12": {"Learning and evolving", []string{"CC4", "CC3"}, 0.6, "Lessons learned and continuous improvement"},
	"Article 13": {"Communication", []string{"CC2", "CC7"}, 0.7, "Crisis communication procedures"},

	// Chapter III - incident reporting
	"Article 17": {"ICT-related incident management process", []string{"CC7", "CC2"}, 1.0, "Incident classification and management"},
	"Article 18": {"Classification of ICT-related incidents", []string{"CC7"}, 0.8, "Incident classification criteria"},
	"Article 19": {"Reporting of major ICT-related incidents", []string{"CC7", "CC2"}, 1.0, "Regulatory incident reporting"},

	// Chapter IV - resilience testing
	"Article 24": {"General requirements for testing", []string{"CC4", "CC7", "A"}, 0.9, "Testing program requirements"},
	"Article 25": {"Testing of ICT tools and systems", []string{"CC7", "CC8", "A"}, 0.8, "Vulnerability assessments and testing"},

	// Chapter V - third-party risk
	"Article 28": {"General principles for third-party risk", []string{"CC9"}, 1.0, "Third-party ICT risk management strategy"},
	"Article 29": {"Preliminary assessment of ICT concentration risk", []string{"CC3", "CC9"}, 0.8, "Concentration risk assessment"},
	"Article 30": {"Key contractual provisions", []string{"CC9"}, 0.9, "Contract requirements for ICT services"},

	// Chapter VI - information sharing
	"Article 45": {"Information sharing arrangements", []string{"CC2", "CC7"}, 0.5, "Threat intelligence sharing"},
}

// Coverage levels per article.
const (
	CoverageFull    = "full"
	CoveragePartial = "partial"
	CoverageNone    = "none"
)

// ArticleCoverage is the mapping result for one DORA article.
type ArticleCoverage struct {
	Article       string
	Title         string
	CoverageLevel string
	Confidence    float64
	SOC2Control   string
	Weight        float64
}

// CoverageResult aggregates article coverage into an overall score.
type CoverageResult struct {
	OverallScore    float64
	ArticlesCovered int
	ArticlesTotal   int
	Articles        []ArticleCoverage
}

// Gap is a DORA article with missing or partial evidence.
type Gap struct {
	Article       string
	Title         string
	Description   string
	CoverageLevel string
	TSCCategories []string
}

// MapCoverage maps SOC 2 controls onto the DORA articles and computes
// the weighted coverage score. Articles are reported in a stable,
// sorted order.
func MapCoverage(controls []Control) CoverageResult {
	byCategory := make(map[string][]Control)
	for _, c := range controls {
		byCategory[c.TSCCategory] = append(byCategory[c.TSCCategory], c)
	}

	names := make([]string, 0, len(doraArticles))
	for name := range doraArticles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return articleNumber(names[i]) < articleNumber(names[j])
	})

	result := CoverageResult{ArticlesTotal: len(doraArticles)}
	weightedScore, totalWeight := 0.0, 0.0

	for _, name := range names {
		info := doraArticles[name]

		var matched []Control
		for _, cat := range info.tscCategories {
			matched = append(matched, byCategory[cat]...)
		}

		cov := ArticleCoverage{
			Article: name,
			Title:   info.title,
			Weight:  info.weight,
		}
		switch {
		case len(matched) == 0:
			cov.CoverageLevel = CoverageNone
		case len(matched) >= len(info.tscCategories)*2:
			cov.CoverageLevel = CoverageFull
			cov.Confidence = 0.95
			cov.SOC2Control = matched[0].ControlID
		case len(matched) >= len(info.tscCategories):
			cov.CoverageLevel = CoverageFull
			cov.Confidence = 0.85
			cov.SOC2Control = matched[0].ControlID
		default:
			cov.CoverageLevel = CoveragePartial
			cov.Confidence = 0.6 + float64(len(matched))/float64(len(info.tscCategories))*0.25
			cov.SOC2Control = matched[0].ControlID
		}

		levelScore := map[string]float64{CoverageFull: 1.0, CoveragePartial: 0.5, CoverageNone: 0.0}[cov.CoverageLevel]
		weightedScore += levelScore * info.weight * cov.Confidence
		totalWeight += info.weight
		if cov.CoverageLevel != CoverageNone {
			result.ArticlesCovered++
		}

		result.Articles = append(result.Articles, cov)
	}

	if totalWeight > 0 {
		result.OverallScore = weightedScore / totalWeight
	}
	return result
}

// Gaps lists the articles without full coverage, highest weight first.
func Gaps(result CoverageResult) []Gap {
	var gaps []Gap
	for _, cov := range result.Articles {
		if cov.CoverageLevel == CoverageFull {
			continue
		}
		info := doraArticles[cov.Article]
		gaps = append(gaps, Gap{
			Article:       cov.Article,
			Title:         info.title,
			Description:   info.description,
			CoverageLevel: cov.CoverageLevel,
			TSCCategories: info.tscCategories,
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return doraArticles[gaps[i].Article].weight > doraArticles[gaps[j].Article].weight
	})
	return gaps
}

// articleNumber extracts the numeric part of "Article N" for ordering.
func articleNumber(name string) int {
	n := 0
	for _, r := range name {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}
