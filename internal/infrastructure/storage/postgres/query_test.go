package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procurement/internal/core/types"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
)

func TestSelectQueries(t *testing.T) {
	tests := []struct {
		name    string
		builder sqlizer
		wantSQL string
	}{
		{
			name:    "acquisitions cast numerics to text",
			builder: selectAcquisitions(),
			wantSQL: "SELECT id, budget::text AS budget, unit, type, quantity::text AS quantity, " +
				"unit_value::text AS unit_value, total_value::text AS total_value, acquisition_date, " +
				"provider, documentation, active, position FROM acquisitions ORDER BY position",
		},
		{
			name:    "history",
			builder: selectHistory(),
			wantSQL: "SELECT id, acquisition_id, action, summary, created_at FROM acquisition_history ORDER BY id",
		},
		{
			name:    "catalog items",
			builder: selectCatalogItems(),
			wantSQL: "SELECT kind, position, value FROM catalog_items ORDER BY kind, position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.builder.ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Empty(t, args)
		})
	}
}

func TestUpsertSavedAt(t *testing.T) {
	sql, args, err := upsertSavedAt().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO snapshot_meta (singleton,saved_at) VALUES ($1,now()) "+
		"ON CONFLICT (singleton) DO UPDATE SET saved_at = EXCLUDED.saved_at", sql)
	assert.Equal(t, []any{true}, args)
}

func TestAcquisitionRow_KeepsExactAmounts(t *testing.T) {
	a := acquisition.Acquisition{
		ID:              3,
		Budget:          types.MustMoney("1000.10"),
		Quantity:        types.MustMoney("3"),
		UnitValue:       types.MustMoney("0.1"),
		TotalValue:      types.MustMoney("0.3"),
		AcquisitionDate: "2024-03-01",
		Provider:        "Acme",
		Active:          true,
	}

	row := toAcquisitionRow(a, 0)
	assert.Equal(t, "0.3", row.TotalValue)

	back, err := row.toDomain()
	require.NoError(t, err)
	assert.True(t, back.Budget.Equal(a.Budget))
	assert.True(t, back.TotalValue.Equal(a.TotalValue))
	assert.Equal(t, a.Provider, back.Provider)
	assert.True(t, back.Active)

	row.Budget = "abc"
	_, err = row.toDomain()
	assert.Error(t, err)
}

func TestHistoryRow_NormalisesToUTC(t *testing.T) {
	local := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CLT", -3*3600))
	e := toHistoryRow(history.Entry{ID: 1, AcquisitionID: 2, Action: history.ActionCreated, Timestamp: local}).toDomain()

	assert.Equal(t, time.UTC, e.Timestamp.Location())
	assert.True(t, e.Timestamp.Equal(local))
}

func TestCatalogRows_PreserveOrder(t *testing.T) {
	c := catalog.Catalogs{
		AdministrativeUnits: []string{"B", "A"},
		GoodsServiceTypes:   []string{"Z"},
	}
	assert.Equal(t, c, catalogsFromRows(catalogRows(c)))
}
