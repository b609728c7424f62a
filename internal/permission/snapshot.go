package permission

// Snapshot is the permission state of one user at one point in time. A
// snapshot built from a failed fetch is still Loaded, so callers can render an
// access-denied state, but it grants nothing.
type Snapshot struct {
	Loaded  bool
	Records []Record
	Err     error
}

// NewSnapshot wraps successfully fetched records.
func NewSnapshot(records []Record) Snapshot {
	return Snapshot{Loaded: true, Records: records}
}

// FailedSnapshot is the fail-closed snapshot for a fetch that went wrong.
func FailedSnapshot(err error) Snapshot {
	return Snapshot{Loaded: true, Err: err}
}

func (s Snapshot) usable() bool {
	return s.Loaded && s.Err == nil
}

// Check resolves all four actions for a module and submodule.
func (s Snapshot) Check(moduleKey string, match Matcher) CRUD {
	if !s.usable() {
		return CRUD{}
	}

	return ResolveAll(s.Records, moduleKey, match)
}

// Allows resolves a single action.
func (s Snapshot) Allows(moduleKey string, match Matcher, action Action) bool {
	if !s.usable() {
		return false
	}

	return Resolve(s.Records, moduleKey, match, action)
}

// Filter drops the navigation entries the snapshot cannot read.
func (s Snapshot) Filter(items []NavItem) []NavItem {
	if !s.usable() {
		return []NavItem{}
	}

	return Filter(s.Records, items)
}
