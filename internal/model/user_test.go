package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRole(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleOfficer, RoleDeaf} {
		require.True(t, r.Valid(), r)
	}
	require.False(t, Role("").Valid())
	require.False(t, Role("Admin").Valid())

	require.True(t, RoleOfficer.SelfAssignable())
	require.True(t, RoleDeaf.SelfAssignable())
	require.False(t, RoleAdmin.SelfAssignable())
	require.False(t, Role("root").SelfAssignable())
}
