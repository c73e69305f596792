package pattern

import (
	"strconv"

	"github.com/a11ylab/ariasnap/internal/types"
)

type attrDomain int

const (
	domainBool attrDomain = iota
	domainTristate
	domainInt
)

// attrDomains is the closed set of recognized attribute keys. Any key
// outside this table is rejected by the parser before validation runs.
var attrDomains = map[string]attrDomain{
	"checked":  domainTristate,
	"pressed":  domainTristate,
	"disabled": domainBool,
	"expanded": domainBool,
	"selected": domainBool,
	"level":    domainInt,
}

func knownAttr(key string) bool {
	_, ok := attrDomains[key]
	return ok
}

// validateAttr coerces a raw attribute value into its typed domain.
// On failure it returns the domain's invalid-value message; the caller
// wraps it with the key and source position.
func validateAttr(key, raw string) (types.AttrValue, string) {
	switch attrDomains[key] {
	case domainTristate:
		if raw == "mixed" {
			return types.MixedValue(), ""
		}
		if b, ok := parseBool(raw); ok {
			return types.BoolValue(b), ""
		}
		return types.AttrValue{}, `must be a boolean or "mixed"`
	case domainInt:
		if n, ok := parseInt(raw); ok {
			return types.IntValue(n), ""
		}
		return types.AttrValue{}, "must be a number"
	default:
		if b, ok := parseBool(raw); ok {
			return types.BoolValue(b), ""
		}
		return types.AttrValue{}, "must be a boolean"
	}
}

// parseBool accepts exactly "true" and "false", case-sensitive.
func parseBool(raw string) (bool, bool) {
	switch raw {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseInt accepts a digit sequence with an optional leading '-'.
func parseInt(raw string) (int, bool) {
	if raw == "" || raw == "-" {
		return 0, false
	}
	body := raw
	if body[0] == '-' {
		body = body[1:]
	}
	for i := 0; i < len(body); i++ {
		if !isDigit(body[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
