package domain

import (
	"strconv"
	"strings"
)

// InsurerDomains maps one insurer name to its ordered list of web domains.
type InsurerDomains struct {
	Name    string   `json:"name" yaml:"name"`
	Domains []string `json:"domains" yaml:"domains"`
}

// DomainMap is the read-only insurer directory. Entry order is significant: the first
// insurer whose name occurs in the question wins.
type DomainMap struct {
	entries []InsurerDomains
}

func NewDomainMap(entries []InsurerDomains) DomainMap {
	out := make([]InsurerDomains, 0, len(entries))
	for _, e := range entries {
		domains := make([]string, len(e.Domains))
		copy(domains, e.Domains)
		out = append(out, InsurerDomains{Name: e.Name, Domains: domains})
	}
	return DomainMap{entries: out}
}

func (m DomainMap) Entries() []InsurerDomains {
	out := make([]InsurerDomains, len(m.entries))
	copy(out, m.entries)
	return out
}

func (m DomainMap) Len() int {
	return len(m.entries)
}

// PrimaryDomain returns the first domain of the first entry whose name is contained
// (case-insensitively) in insurer.
func (m DomainMap) PrimaryDomain(insurer string) (string, bool) {
	lower := strings.ToLower(insurer)
	for _, e := range m.entries {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" || len(e.Domains) == 0 {
			continue
		}
		if strings.Contains(lower, name) {
			return e.Domains[0], true
		}
	}
	return "", false
}

// QueryPlan is everything the query constructor derived from one question.
type QueryPlan struct {
	Question        string   `json:"question"`
	Insurer         string   `json:"insurer"`
	Plan            string   `json:"plan"`
	MetalTier       string   `json:"metal_tier"`
	PlanType        string   `json:"plan_type"`
	Year            int      `json:"year"`
	Feature         string   `json:"feature"`
	Jurisdiction    string   `json:"jurisdiction"`
	PrimaryDomain   string   `json:"primary_domain"`
	FallbackDomains []string `json:"fallback_domains"`
}

// Domains returns the primary domain followed by the fallbacks, without repeats.
func (p QueryPlan) Domains() []string {
	seen := make(map[string]struct{}, 1+len(p.FallbackDomains))
	out := make([]string, 0, 1+len(p.FallbackDomains))
	for _, d := range append([]string{p.PrimaryDomain}, p.FallbackDomains...) {
		d = strings.TrimSpace(d)
		key := strings.ToLower(d)
		if d == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

// QueryFor renders the site-scoped search query against domain.
func (p QueryPlan) QueryFor(domain string) string {
	parts := []string{"site:" + domain}
	if p.Year > 0 {
		parts = append(parts, strconv.Itoa(p.Year))
	}
	for _, s := range []string{p.MetalTier, p.PlanType, p.Jurisdiction} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
