package permission

import "strings"

// Matcher selects the submodule a check applies to.
type Matcher func(SubModule) bool

// MatchNone never matches, restricting resolution to module-level grants.
func MatchNone(SubModule) bool { return false }

// MatchName matches a submodule whose name equals or contains name, ignoring case.
func MatchName(name string) Matcher {
	needle := strings.ToLower(strings.TrimSpace(name))

	return func(s SubModule) bool {
		if needle == "" {
			return false
		}

		return strings.Contains(strings.ToLower(s.Name), needle)
	}
}

// MatchPath matches a submodule whose path contains path, ignoring case.
func MatchPath(path string) Matcher {
	needle := strings.ToLower(strings.TrimSpace(path))

	return func(s SubModule) bool {
		if needle == "" || s.Path == "" {
			return false
		}

		return strings.Contains(strings.ToLower(s.Path), needle)
	}
}

// MatchNameOrPath matches on either the name or the path.
func MatchNameOrPath(name, path string) Matcher {
	byName, byPath := MatchName(name), MatchPath(path)

	return func(s SubModule) bool {
		return byName(s) || byPath(s)
	}
}

// findSubModule returns the first submodule accepted by match.
func findSubModule(r *Record, match Matcher) (*SubModule, bool) {
	if match == nil {
		return nil, false
	}

	for i := range r.SubModules {
		if match(r.SubModules[i]) {
			return &r.SubModules[i], true
		}
	}

	return nil, false
}

// Resolve decides a single action. The most specific applicable scope wins:
// submodule flag, submodule all, module flag, module all, then deny. A module
// that cannot be found denies everything.
func Resolve(records []Record, moduleKey string, match Matcher, action Action) bool {
	module, ok := findModule(records, moduleKey)
	if !ok {
		return false
	}

	sub, _ := findSubModule(module, match)

	return resolve(module, sub, action)
}

// ResolveAll decides all four actions for the same module and submodule.
func ResolveAll(records []Record, moduleKey string, match Matcher) CRUD {
	module, ok := findModule(records, moduleKey)
	if !ok {
		return CRUD{}
	}

	sub, _ := findSubModule(module, match)

	return CRUD{
		Create: resolve(module, sub, ActionCreate),
		Read:   resolve(module, sub, ActionRead),
		Update: resolve(module, sub, ActionUpdate),
		Delete: resolve(module, sub, ActionDelete),
	}
}

func resolve(module *Record, sub *SubModule, action Action) bool {
	if sub != nil {
		if f := sub.Actions.explicit(action); f.IsSet() {
			return f == Granted
		}

		if sub.Actions.All == Granted {
			return true
		}
	}

	if f := module.Actions.explicit(action); f.IsSet() {
		return f == Granted
	}

	return module.Actions.All == Granted
}
