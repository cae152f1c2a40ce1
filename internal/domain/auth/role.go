package auth

import "slices"

type Role string

const (
	RoleOwner   Role = "owner"   // Agency owner - full access
	RoleManager Role = "manager" // Records hours, payments and bonus rules
	RoleViewer  Role = "viewer"  // Read-only dashboard access
)

func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleViewer:
		return true
	}
	return false
}

type Permission string

const (
	PermissionEmployeeView    Permission = "employee.view"
	PermissionTimeEntryView   Permission = "time_entry.view"
	PermissionTimeEntryManage Permission = "time_entry.manage"
	PermissionPaymentView     Permission = "payment.view"
	PermissionPaymentManage   Permission = "payment.manage"
	PermissionBonusRuleView   Permission = "bonus_rule.view"
	PermissionBonusRuleManage Permission = "bonus_rule.manage"
	PermissionEarningsView    Permission = "earnings.view"
	PermissionSnapshotView    Permission = "snapshot.view"
)

var readPermissions = []Permission{
	PermissionEmployeeView,
	PermissionTimeEntryView,
	PermissionPaymentView,
	PermissionBonusRuleView,
	PermissionEarningsView,
}

var managePermissions = []Permission{
	PermissionTimeEntryManage,
	PermissionPaymentManage,
	PermissionBonusRuleManage,
	PermissionSnapshotView,
}

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner:   slices.Concat(readPermissions, managePermissions),
	RoleManager: slices.Concat(readPermissions, managePermissions),
	RoleViewer:  readPermissions,
}

func HasPermission(role Role, permission Permission) bool {
	return slices.Contains(RolePermissions[role], permission)
}
