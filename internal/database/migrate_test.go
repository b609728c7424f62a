package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/clinicdesk/internal/database"
)

func TestMigrations_Ordered(t *testing.T) {
	names, err := database.Migrations()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"0001_invoices.sql",
		"0002_memberships.sql",
		"0003_staff.sql",
		"0004_catalog.sql",
		"0005_item_name_mappings.sql",
	}, names)
}
