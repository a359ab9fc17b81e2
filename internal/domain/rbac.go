package domain

// EnforceRequest is the authorization question asked of the RBAC layer.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

// RolePermission mirrors one row of the role_permissions policy table.
type RolePermission struct {
	Role     string
	Resource string
	Action   string
}
