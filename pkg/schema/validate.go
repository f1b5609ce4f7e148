package schema

// ValidateName reports whether name is non-empty and made only of ASCII
// letters, digits and underscores.
func ValidateName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return false
		}
	}
	return true
}

// ValidateType reports whether the type begins with a known type name.
// Only the leading name is checked: "array<bogus>" is accepted. Type strings
// that start with a delimiter are rejected.
func ValidateType(t string) bool {
	tokens := Tokenize(t)
	if len(tokens) == 0 || !tokens[0].Word {
		return false
	}
	_, ok := knownTypes[tokens[0].Text]
	return ok
}

// ValidateColumns returns a description of the first invalid column,
// "name: <name>" or "type: <type>", or "" when every column is valid.
func ValidateColumns(cols Columns) string {
	for _, col := range cols {
		if !ValidateName(col.Name) {
			return "name: " + col.Name
		}
		if !ValidateType(col.Type) {
			return "type: " + col.Type
		}
	}
	return ""
}

// ValidateSkewedColNames returns the first skewed column name that is not a
// valid name, or "".
func ValidateSkewedColNames(names []string) string {
	for _, name := range names {
		if !ValidateName(name) {
			return name
		}
	}
	return ""
}

// SkewedColNamesNotInColumns returns the skewed column names that do not
// name a column in cols, in their original order.
func SkewedColNamesNotInColumns(skewed []string, cols Columns) []string {
	known := make(map[string]struct{}, len(cols))
	for _, col := range cols {
		known[col.Name] = struct{}{}
	}
	var missing []string
	for _, name := range skewed {
		if _, ok := known[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
