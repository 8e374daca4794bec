package auth

import "strings"

// AccessPolicy classifies request paths as public or protected through an
// ordered list of prefix rules. Evaluation is first-match; when no rule
// matches, the path is protected. The rule list is fixed at construction and
// never mutated during request handling.
type AccessPolicy struct {
	rules []PathRule
}

// PathRule marks every path under Prefix as public or protected.
type PathRule struct {
	Prefix string
	Public bool
}

// NewAccessPolicy builds a policy marking the given prefixes public.
func NewAccessPolicy(publicPrefixes []string) *AccessPolicy {
	rules := make([]PathRule, 0, len(publicPrefixes))
	for _, prefix := range publicPrefixes {
		if prefix == "" {
			continue
		}
		rules = append(rules, PathRule{Prefix: prefix, Public: true})
	}
	return &AccessPolicy{rules: rules}
}

// NewAccessPolicyFromRules builds a policy from explicit ordered rules.
func NewAccessPolicyFromRules(rules []PathRule) *AccessPolicy {
	return &AccessPolicy{rules: append([]PathRule(nil), rules...)}
}

// IsPublic reports whether the path may bypass authentication.
func (p *AccessPolicy) IsPublic(path string) bool {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Public
		}
	}
	return false
}
