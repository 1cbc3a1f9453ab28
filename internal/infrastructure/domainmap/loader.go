package domainmap

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyan-shrestha/you-ai-hackathon/internal/core/domain"
)

//go:embed default_domains.json
var defaultDomains []byte

// Default returns the built-in insurer map.
func Default() domain.DomainMap {
	m, err := Parse(defaultDomains)
	if err != nil {
		panic(fmt.Sprintf("embedded domain map: %v", err))
	}
	return m
}

// Load reads an insurer -> domains map from a JSON or YAML file. An empty path returns
// the built-in map.
func Load(path string) (domain.DomainMap, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.DomainMap{}, fmt.Errorf("read domain map: %w", err)
	}
	m, err := Parse(raw)
	if err != nil {
		return domain.DomainMap{}, fmt.Errorf("parse domain map %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a single mapping of insurer name to a list of domains. It walks the
// YAML node tree instead of decoding into a Go map so that the file's insurer order,
// which decides detection priority, survives. JSON input is accepted as YAML.
func Parse(raw []byte) (domain.DomainMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("empty document"))
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("expected a mapping at line %d", root.Line))
	}

	entries := make([]domain.InsurerDomains, 0, len(root.Content)/2)
	seen := make(map[string]struct{}, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("empty insurer name at line %d", keyNode.Line))
		}
		if _, dup := seen[strings.ToLower(name)]; dup {
			return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("duplicate insurer %q at line %d", name, keyNode.Line))
		}
		seen[strings.ToLower(name)] = struct{}{}

		var domains []string
		if err := valueNode.Decode(&domains); err != nil {
			return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("insurer %q: %w", name, err))
		}
		cleaned := make([]string, 0, len(domains))
		for _, d := range domains {
			if d = strings.TrimSpace(d); d != "" {
				cleaned = append(cleaned, d)
			}
		}
		if len(cleaned) == 0 {
			return domain.DomainMap{}, domain.WrapError(domain.ErrInvalidInput, "decode domain map", fmt.Errorf("insurer %q has no domains", name))
		}
		entries = append(entries, domain.InsurerDomains{Name: name, Domains: cleaned})
	}
	return domain.NewDomainMap(entries), nil
}

// ParseDomainList splits a comma-separated domain list, dropping blanks.
func ParseDomainList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
