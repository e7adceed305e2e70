package postgres

import (
	"fmt"
	"time"

	"procurement/internal/core/types"
	"procurement/internal/domain/acquisition"
	"procurement/internal/domain/catalog"
	"procurement/internal/domain/history"
)

// Catalog kinds stored in catalog_items.kind.
const (
	kindUnit = "unit"
	kindType = "type"
)

// acquisitionRow mirrors the acquisitions table. Amounts travel as text so
// they keep their exact decimal representation.
type acquisitionRow struct {
	ID              int64  `db:"id"`
	Budget          string `db:"budget"`
	Unit            string `db:"unit"`
	Type            string `db:"type"`
	Quantity        string `db:"quantity"`
	UnitValue       string `db:"unit_value"`
	TotalValue      string `db:"total_value"`
	AcquisitionDate string `db:"acquisition_date"`
	Provider        string `db:"provider"`
	Documentation   string `db:"documentation"`
	Active          bool   `db:"active"`
	Position        int    `db:"position"`
}

type historyRow struct {
	ID            int       `db:"id"`
	AcquisitionID int64     `db:"acquisition_id"`
	Action        string    `db:"action"`
	Summary       string    `db:"summary"`
	CreatedAt     time.Time `db:"created_at"`
}

type catalogItemRow struct {
	Kind     string `db:"kind"`
	Position int    `db:"position"`
	Value    string `db:"value"`
}

var (
	acquisitionColumns = ExtractDBColumns[acquisitionRow]()
	historyColumns     = ExtractDBColumns[historyRow]()
	catalogItemColumns = ExtractDBColumns[catalogItemRow]()
)

func toAcquisitionRow(a acquisition.Acquisition, position int) acquisitionRow {
	return acquisitionRow{
		ID:              a.ID,
		Budget:          a.Budget.String(),
		Unit:            a.Unit,
		Type:            a.Type,
		Quantity:        a.Quantity.String(),
		UnitValue:       a.UnitValue.String(),
		TotalValue:      a.TotalValue.String(),
		AcquisitionDate: a.AcquisitionDate,
		Provider:        a.Provider,
		Documentation:   a.Documentation,
		Active:          a.Active,
		Position:        position,
	}
}

func (r acquisitionRow) toDomain() (acquisition.Acquisition, error) {
	var amounts [4]types.Money
	for i, s := range []string{r.Budget, r.Quantity, r.UnitValue, r.TotalValue} {
		m, err := types.NewMoneyFromString(s)
		if err != nil {
			return acquisition.Acquisition{}, fmt.Errorf("acquisition %d: parse amount %q: %w", r.ID, s, err)
		}
		amounts[i] = m
	}
	return acquisition.Acquisition{
		ID:              r.ID,
		Budget:          amounts[0],
		Unit:            r.Unit,
		Type:            r.Type,
		Quantity:        amounts[1],
		UnitValue:       amounts[2],
		TotalValue:      amounts[3],
		AcquisitionDate: r.AcquisitionDate,
		Provider:        r.Provider,
		Documentation:   r.Documentation,
		Active:          r.Active,
	}, nil
}

func toHistoryRow(e history.Entry) historyRow {
	return historyRow{
		ID:            e.ID,
		AcquisitionID: e.AcquisitionID,
		Action:        string(e.Action),
		Summary:       e.Summary,
		CreatedAt:     e.Timestamp,
	}
}

func (r historyRow) toDomain() history.Entry {
	return history.Entry{
		ID:            r.ID,
		AcquisitionID: r.AcquisitionID,
		Action:        history.Action(r.Action),
		Summary:       r.Summary,
		Timestamp:     r.CreatedAt.UTC(),
	}
}

func catalogRows(c catalog.Catalogs) []catalogItemRow {
	rows := make([]catalogItemRow, 0, len(c.AdministrativeUnits)+len(c.GoodsServiceTypes))
	for i, v := range c.AdministrativeUnits {
		rows = append(rows, catalogItemRow{Kind: kindUnit, Position: i, Value: v})
	}
	for i, v := range c.GoodsServiceTypes {
		rows = append(rows, catalogItemRow{Kind: kindType, Position: i, Value: v})
	}
	return rows
}

// catalogsFromRows expects rows ordered by kind and position.
func catalogsFromRows(rows []catalogItemRow) catalog.Catalogs {
	var c catalog.Catalogs
	for _, r := range rows {
		switch r.Kind {
		case kindUnit:
			c.AdministrativeUnits = append(c.AdministrativeUnits, r.Value)
		case kindType:
			c.GoodsServiceTypes = append(c.GoodsServiceTypes, r.Value)
		}
	}
	return c
}

func copyRows[T any](rows []T) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, RowValues(r))
	}
	return out
}
