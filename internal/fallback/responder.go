// Package fallback provides the rule-based responder used whenever real model
// inference is unavailable or fails. Respond is total: it returns non-empty
// text for every input, including the empty string.
package fallback

import "strings"

// Rule maps trigger keywords to a canned response. A rule matches when the
// lower-cased prompt contains any keyword from Any AND, if All is non-empty,
// at least one keyword from each group in All.
type Rule struct {
	Name     string
	Any      []string
	All      [][]string
	Response string
}

// Responder evaluates rules in fixed priority order: safety and emergency
// first, then survival topics, then conversational, then technical, then
// arithmetic, then an unconditional default.
type Responder struct {
	rules []Rule
}

// New returns a Responder with the built-in rule table.
func New() *Responder {
	return &Responder{rules: defaultRules}
}

// Respond returns the first matching canned response for prompt.
func (r *Responder) Respond(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, rule := range r.rules {
		if rule.matches(lower) {
			return rule.Response
		}
	}
	if ans, ok := evalArithmetic(prompt); ok {
		return ans
	}
	return defaultResponse
}

func (rule Rule) matches(lower string) bool {
	if !containsAny(lower, rule.Any) {
		return false
	}
	for _, group := range rule.All {
		if !containsAny(lower, group) {
			return false
		}
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
