package emitter

import "strings"

// ScenarioName converts a user-supplied scenario name into the slug used
// for directories, file names and generated identifiers. The slug is
// lowercase snake case and never starts with a digit.
// e.g. "Login Form (v2)" → "login_form_v2"
func ScenarioName(name string) string {
	s := slugify(name)
	if s == "" {
		return "scenario"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "scenario_" + s
	}
	return s
}

// FieldIdent converts an element's raw name or id into a data-file key.
// e.g. "user-name" → "user_name"
func FieldIdent(name string) string {
	s := slugify(name)
	if s == "" {
		return "field"
	}
	if s[0] >= '0' && s[0] <= '9' {
		s = "field_" + s
	}
	return s
}

// Pascal converts a slug into an exported Go identifier.
// e.g. "user_name" → "UserName"
func Pascal(slug string) string {
	var b strings.Builder
	for _, part := range strings.Split(slug, "_") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// slugify lowercases text and folds every non-alphanumeric run into a
// single underscore.
func slugify(name string) string {
	name = strings.ToLower(name)
	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}
	result := b.String()
	for strings.Contains(result, "__") {
		result = strings.ReplaceAll(result, "__", "_")
	}
	return strings.Trim(result, "_")
}
