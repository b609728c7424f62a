package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/clinicdesk/internal/permission"
)

func TestFilter(t *testing.T) {
	records := decode(t, `[
		{
			"module": "clinic_staff_management",
			"actions": {"read": false},
			"subModules": [
				{"name": "Petty Cash", "path": "/staff/petty-cash", "actions": {"read": true}},
				{"name": "Add EOD Task", "path": "/staff/eod", "actions": {"read": "false"}}
			]
		},
		{"module": "admin_billing", "actions": {"all": true}, "subModules": [{"name": "Cancelled Claims", "actions": {"read": false}}]},
		{"module": "doctor_reports", "actions": {"read": false}}
	]`)

	items := []permission.NavItem{
		{
			ID: "1", Label: "Staff", Path: "/staff", ModuleKey: "staff_management",
			SubModules: []permission.NavSubModule{
				{Name: "Petty Cash", Path: "/staff/petty-cash"},
				{Name: "Add EOD Task", Path: "/staff/eod"},
			},
		},
		{
			ID: "2", Label: "Billing", Path: "/billing", ModuleKey: "clinic_billing",
			SubModules: []permission.NavSubModule{
				{Label: "Patient Registration", Path: "/billing/register"},
				{Name: "Cancelled Claims", Path: "/billing/cancelled"},
			},
		},
		{ID: "3", Label: "Reports", Path: "/reports", ModuleKey: "reports"},
		{ID: "4", Label: "Inventory", Path: "/inventory", ModuleKey: "inventory"},
	}

	got := permission.Filter(records, items)
	require.Len(t, got, 2)

	assert.Equal(t, "Staff", got[0].Label)
	require.Len(t, got[0].SubModules, 1)
	assert.Equal(t, "Petty Cash", got[0].SubModules[0].Name)

	assert.Equal(t, "Billing", got[1].Label)
	require.Len(t, got[1].SubModules, 1)
	assert.Equal(t, "Patient Registration", got[1].SubModules[0].Label)

	// The input is left untouched.
	assert.Len(t, items[0].SubModules, 2)
}
