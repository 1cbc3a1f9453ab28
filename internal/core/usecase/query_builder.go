package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

const (
	DefaultInsurer       = "HealthCare.gov"
	DefaultPlan          = "Marketplace Plan"
	DefaultYear          = 2025
	DefaultFeature       = "benefits"
	DefaultPrimaryDomain = "healthcare.gov"
	DefaultJurisdiction  = "Florida"
)

// DefaultFallbackDomains are the federal exchange domains tried after the insurer's own.
var DefaultFallbackDomains = []string{"healthcare.gov", "cms.gov"}

var (
	planPattern = regexp.MustCompile(`(?i)(Silver|Gold|Bronze|Platinum)\s?[\w\s\-]*`)
	yearPattern = regexp.MustCompile(`(?:^|\D)(20\d{2})(?:\D|$)`)
)

// Checked in this order; the first hit wins.
var (
	metalTiers = []string{"Silver", "Gold", "Bronze", "Platinum"}
	planTypes  = []string{"PPO", "HMO"}
)

var featureKeywords = []struct {
	keyword string
	feature string
}{
	{"deduct", "deductible"},
	{"premium", "premium"},
	{"copay", "copay"},
	{"out-of-pocket", "out of pocket maximum"},
	{"coverage", "coverage"},
}

// QueryBuilder turns a free-form question into a QueryPlan. Every detector is total:
// a miss resolves to its documented default.
type QueryBuilder struct {
	domains      domain.DomainMap
	fallbacks    []string
	jurisdiction string
}

func NewQueryBuilder(domains domain.DomainMap, fallbacks []string, jurisdiction string) *QueryBuilder {
	if len(fallbacks) == 0 {
		fallbacks = DefaultFallbackDomains
	}
	if strings.TrimSpace(jurisdiction) == "" {
		jurisdiction = DefaultJurisdiction
	}
	fb := make([]string, len(fallbacks))
	copy(fb, fallbacks)
	return &QueryBuilder{
		domains:      domains,
		fallbacks:    fb,
		jurisdiction: jurisdiction,
	}
}

func (b *QueryBuilder) Plan(question string) domain.QueryPlan {
	insurer := detectInsurer(question, b.domains)
	plan := detectPlan(question)

	primary, ok := b.domains.PrimaryDomain(insurer)
	if !ok {
		primary = DefaultPrimaryDomain
	}

	fallbacks := make([]string, len(b.fallbacks))
	copy(fallbacks, b.fallbacks)

	return domain.QueryPlan{
		Question:        question,
		Insurer:         insurer,
		Plan:            plan,
		MetalTier:       detectMetalTier(plan),
		PlanType:        detectPlanType(plan),
		Year:            detectYear(question),
		Feature:         detectFeature(question),
		Jurisdiction:    b.jurisdiction,
		PrimaryDomain:   primary,
		FallbackDomains: fallbacks,
	}
}

func detectInsurer(text string, domains domain.DomainMap) string {
	lower := strings.ToLower(text)
	for _, e := range domains.Entries() {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			return e.Name
		}
	}
	return DefaultInsurer
}

func detectPlan(text string) string {
	m := planPattern.FindString(text)
	if m == "" {
		return DefaultPlan
	}
	return strings.TrimSpace(m)
}

func detectMetalTier(plan string) string {
	lower := strings.ToLower(plan)
	for _, tier := range metalTiers {
		if strings.Contains(lower, strings.ToLower(tier)) {
			return tier
		}
	}
	return ""
}

func detectPlanType(plan string) string {
	lower := strings.ToLower(plan)
	for _, t := range planTypes {
		if strings.Contains(lower, strings.ToLower(t)) {
			return t
		}
	}
	return ""
}

func detectYear(text string) int {
	m := yearPattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return DefaultYear
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return DefaultYear
	}
	return year
}

func detectFeature(text string) string {
	lower := strings.ToLower(text)
	for _, kv := range featureKeywords {
		if strings.Contains(lower, kv.keyword) {
			return kv.feature
		}
	}
	return DefaultFeature
}
