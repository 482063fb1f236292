package authcore

// RoleGate restricts an endpoint to a fixed set of permitted roles. It is a
// pure membership check layered after credential verification, never folded
// into it: some endpoints verify identity without restricting role, so the
// two checks stay independently composable.
type RoleGate struct {
	permitted map[string]struct{}
}

// NewRoleGate fixes the permitted role set at construction.
func NewRoleGate(roles ...string) *RoleGate {
	permitted := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		permitted[r] = struct{}{}
	}
	return &RoleGate{permitted: permitted}
}

// Allowed reports whether the identity's role is in the permitted set.
func (g *RoleGate) Allowed(identity *Identity) bool {
	if g == nil || identity == nil {
		return false
	}
	_, ok := g.permitted[identity.Role]
	return ok
}

// AllowedRole is the role-string form of [RoleGate.Allowed], for callers
// that gate on a claim rather than a resolved identity.
func (g *RoleGate) AllowedRole(role string) bool {
	if g == nil {
		return false
	}
	_, ok := g.permitted[role]
	return ok
}

// Check returns [ErrInsufficientRole] when the identity's role is not
// permitted.
func (g *RoleGate) Check(identity *Identity) error {
	if !g.Allowed(identity) {
		return ErrInsufficientRole
	}
	return nil
}
