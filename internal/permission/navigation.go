package permission

// NavItem is a sidebar entry served by the navigation endpoint.
type NavItem struct {
	ID          string         `json:"_id"`
	Label       string         `json:"label"`
	Path        string         `json:"path"`
	Icon        string         `json:"icon"`
	Description string         `json:"description,omitempty"`
	ModuleKey   string         `json:"moduleKey"`
	SubModules  []NavSubModule `json:"subModules"`
}

// NavSubModule is a child link of a sidebar entry.
type NavSubModule struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label,omitempty"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}

// matcher matches the permission submodule guarding this link.
func (n NavSubModule) matcher() Matcher {
	name := n.Name
	if name == "" {
		name = n.Label
	}

	return MatchNameOrPath(name, n.Path)
}

// Filter returns the items and submodules that resolve read access, in their
// original order. An item stays visible when its module grants read or when
// at least one of its submodules does.
func Filter(records []Record, items []NavItem) []NavItem {
	visible := make([]NavItem, 0, len(items))

	for _, item := range items {
		subs := make([]NavSubModule, 0, len(item.SubModules))

		for _, sub := range item.SubModules {
			if Resolve(records, item.ModuleKey, sub.matcher(), ActionRead) {
				subs = append(subs, sub)
			}
		}

		if len(subs) == 0 && !Resolve(records, item.ModuleKey, MatchNone, ActionRead) {
			continue
		}

		item.SubModules = subs
		visible = append(visible, item)
	}

	return visible
}
