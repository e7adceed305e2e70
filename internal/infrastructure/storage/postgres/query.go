package postgres

import (
	"github.com/Masterminds/squirrel"
)

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// numericColumns are selected as text so decimals round-trip exactly.
var numericColumns = map[string]bool{
	"budget":      true,
	"quantity":    true,
	"unit_value":  true,
	"total_value": true,
}

func selectAcquisitions() squirrel.SelectBuilder {
	cols := make([]string, 0, len(acquisitionColumns))
	for _, c := range acquisitionColumns {
		if numericColumns[c] {
			c = c + "::text AS " + c
		}
		cols = append(cols, c)
	}
	return builder().Select(cols...).From(tableAcquisitions).OrderBy("position")
}

func selectHistory() squirrel.SelectBuilder {
	return builder().Select(historyColumns...).From(tableHistory).OrderBy("id")
}

func selectCatalogItems() squirrel.SelectBuilder {
	return builder().Select(catalogItemColumns...).From(tableCatalogItems).OrderBy("kind", "position")
}

func selectSavedAt() squirrel.SelectBuilder {
	return builder().Select("saved_at").From(tableSnapshotMeta)
}

func upsertSavedAt() squirrel.InsertBuilder {
	return builder().
		Insert(tableSnapshotMeta).
		Columns("singleton", "saved_at").
		Values(true, squirrel.Expr("now()")).
		Suffix("ON CONFLICT (singleton) DO UPDATE SET saved_at = EXCLUDED.saved_at")
}

func truncateAll() string {
	return "TRUNCATE " + tableAcquisitions + ", " + tableHistory + ", " + tableCatalogItems
}
