package employee

type Permission string

const (
	// Attendance
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceViewOwn Permission = "attendance.view_own"

	// Leave
	PermissionLeaveCreate        Permission = "leave.create"
	PermissionLeaveViewOwn       Permission = "leave.view_own"
	PermissionLeaveApprove       Permission = "leave.approve"
	PermissionLeaveAdjustBalance Permission = "leave.adjust_balance"

	// Schedule
	PermissionScheduleViewOwn Permission = "schedule.view_own"
	PermissionScheduleViewAll Permission = "schedule.view_all"
	PermissionScheduleManage  Permission = "schedule.manage"

	// Reports
	PermissionReportsView Permission = "reports.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionLeaveViewOwn,
		PermissionLeaveApprove,
		PermissionLeaveAdjustBalance,
		PermissionScheduleViewAll,
		PermissionScheduleManage,
		PermissionReportsView,
	},
	RoleAdmin: {
		// Admins work office shifts and file leave like staff
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionLeaveApprove,
		PermissionLeaveAdjustBalance,
		PermissionScheduleViewOwn,
		PermissionScheduleViewAll,
		PermissionScheduleManage,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionAttendanceClock,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
		PermissionScheduleViewOwn,
		PermissionScheduleViewAll,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
