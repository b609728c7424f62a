package permission

import "strings"

// modulePrefixes are the scopes the same logical module may be recorded under.
var modulePrefixes = []string{"admin_", "clinic_", "doctor_"}

// CanonicalModule strips a scope prefix from a module key and lowercases it.
func CanonicalModule(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))

	for _, p := range modulePrefixes {
		if rest, ok := strings.CutPrefix(key, p); ok {
			return rest
		}
	}

	return key
}

// ModuleAliases returns every key a module may be recorded under: the
// canonical key first, then each prefixed form.
func ModuleAliases(key string) []string {
	canonical := CanonicalModule(key)

	aliases := make([]string, 0, len(modulePrefixes)+1)
	aliases = append(aliases, canonical)

	for _, p := range modulePrefixes {
		aliases = append(aliases, p+canonical)
	}

	return aliases
}

// findModule returns the first record stored under any alias of key.
func findModule(records []Record, key string) (*Record, bool) {
	aliases := ModuleAliases(key)

	for i := range records {
		module := strings.ToLower(strings.TrimSpace(records[i].Module))

		for _, alias := range aliases {
			if module == alias {
				return &records[i], true
			}
		}
	}

	return nil, false
}
