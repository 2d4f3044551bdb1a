package usecase

import "regexp"

// Rule couples a compiled pattern with a builder for its result. Rule tables
// are evaluated in slice order with the first match winning, so table order
// encodes precedence: specific patterns belong before generic ones.
//
// The size tokenizer, brand resolver, and category pattern tier all run on
// this one reducer instead of keeping their own pattern-walk loops.
type Rule[T any] struct {
	Pattern *regexp.Regexp
	Build   func(match []string) T
}

// FirstMatch evaluates rules in table order against input and returns the
// result of the first rule whose pattern matches.
func FirstMatch[T any](rules []Rule[T], input string) (T, bool) {
	for _, r := range rules {
		if m := r.Pattern.FindStringSubmatch(input); m != nil {
			return r.Build(m), true
		}
	}
	var zero T
	return zero, false
}

// StripAll removes every occurrence of every rule pattern from input,
// replacing each with a single space. Used by the base-title extractor.
func StripAll[T any](rules []Rule[T], input string) string {
	out := input
	for _, r := range rules {
		out = r.Pattern.ReplaceAllString(out, " ")
	}
	return out
}
