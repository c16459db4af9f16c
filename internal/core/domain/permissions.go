package domain

// Canonical actions. Custom actions (e.g. "approve", "export") are allowed;
// these are just the ones every module understands.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// PermissionEntry grants a set of actions on one module (a domain area such
// as "orders" or "customers").
type PermissionEntry struct {
	Module  string   `json:"module" bson:"module"`
	Actions []string `json:"actions" bson:"actions"`
}

// HasAction reports whether the entry grants the given action.
func (e PermissionEntry) HasAction(action string) bool {
	for _, a := range e.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// PermissionSet is an ordered effective permission list. Module names are
// unique within a set: a later entry for the same module replaces the earlier
// one entirely.
type PermissionSet []PermissionEntry

// MergePermissions combines a role's baseline with user-specific overrides.
// An override whose module matches a baseline entry replaces that entry
// wholesale; actions are NOT unioned. Overrides for modules absent from the
// baseline are appended. Existing role configurations depend on the
// override-replaces-base semantics, so do not "fix" this to a union.
func MergePermissions(base, overrides []PermissionEntry) PermissionSet {
	effective := make(PermissionSet, len(base))
	copy(effective, base)

	for _, ov := range overrides {
		replaced := false
		for i := range effective {
			if effective[i].Module == ov.Module {
				effective[i] = ov
				replaced = true
				break
			}
		}
		if !replaced {
			effective = append(effective, ov)
		}
	}
	return effective
}

// Allows reports whether the set grants action on module.
func (ps PermissionSet) Allows(module, action string) bool {
	for _, e := range ps {
		if e.Module == module {
			return e.HasAction(action)
		}
	}
	return false
}

// Module returns the entry for module and whether one exists.
func (ps PermissionSet) Module(module string) (PermissionEntry, bool) {
	for _, e := range ps {
		if e.Module == module {
			return e, true
		}
	}
	return PermissionEntry{}, false
}
