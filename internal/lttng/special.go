package lttng

// SpecialSizes maps template name → parameter name → a literal size
// expression. An entry replaces the element-size formula used when a struct
// or array field is serialized.
type SpecialSizes map[string]map[string]string

// DefaultSpecialSizes returns the built-in overrides. The bulk events carry
// variable-size elements whose total byte size is passed by the caller in
// Values_ElementSize.
func DefaultSpecialSizes() SpecialSizes {
	return SpecialSizes{
		"BulkType":            {"Values": "Values_ElementSize"},
		"GCBulkRootCCW":       {"Values": "Values_ElementSize"},
		"GCBulkRCW":           {"Values": "Values_ElementSize"},
		"GCBulkRootStaticVar": {"Values": "Values_ElementSize"},
	}
}

// Lookup returns the override for a template parameter.
func (s SpecialSizes) Lookup(template, param string) (string, bool) {
	expr, ok := s[template][param]
	return expr, ok
}

// Merge returns a copy of s with the entries of extra added; extra wins on conflict.
func (s SpecialSizes) Merge(extra SpecialSizes) SpecialSizes {
	out := make(SpecialSizes, len(s)+len(extra))
	for _, src := range []SpecialSizes{s, extra} {
		for tmpl, params := range src {
			if out[tmpl] == nil {
				out[tmpl] = make(map[string]string, len(params))
			}
			for param, expr := range params {
				out[tmpl][param] = expr
			}
		}
	}
	return out
}
