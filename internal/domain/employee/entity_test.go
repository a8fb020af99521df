package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleDecides(t *testing.T) {
	tests := []struct {
		approver Role
		subject  Role
		want     bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleEmployee, false},
		{RoleOwner, RoleOwner, false},
		{RoleAdmin, RoleEmployee, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleOwner, false},
		{RoleEmployee, RoleEmployee, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.approver)+"->"+string(tt.subject), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.approver.Decides(tt.subject))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.True(t, r.IsSupervisor())

	_, err = ParseRole("manager")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionScheduleManage))
	assert.False(t, HasPermission(RoleEmployee, PermissionScheduleManage))
	assert.False(t, HasPermission(RoleOwner, PermissionAttendanceClock))
	assert.False(t, HasPermission(Role("ghost"), PermissionLeaveViewOwn))
}
