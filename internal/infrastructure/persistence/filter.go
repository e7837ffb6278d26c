package persistence

import (
	"fmt"

	"github.com/tradeworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns whitelists sortable columns to keep user-supplied
// order-by values out of raw SQL
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"number":     true,
	"issue_date": true,
	"due_date":   true,
	"starts_at":  true,
	"status":     true,
	"sku":        true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	dir := "ASC"
	if filter.OrderDir == "desc" {
		dir = "DESC"
	}

	return query.
		Order(fmt.Sprintf("%s %s", orderBy, dir)).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}
