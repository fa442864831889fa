package models

import (
	"time"

	"io.winapps.adminconsole/internal/filters"
)

// Resource names an admin console page that carries a filter panel
type Resource string

const (
	ResourceFileManager    Resource = "file-manager"
	ResourceInventory      Resource = "inventory"
	ResourceBilling        Resource = "billing"
	ResourcePurchaseOrders Resource = "purchase-orders"
	ResourceSalesOrders    Resource = "sales-orders"
	ResourceVendors        Resource = "vendors"
	ResourcePatients       Resource = "patients"
)

// Resources lists every page that accepts presets
var Resources = []Resource{
	ResourceFileManager,
	ResourceInventory,
	ResourceBilling,
	ResourcePurchaseOrders,
	ResourceSalesOrders,
	ResourceVendors,
	ResourcePatients,
}

func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// MaxPresetNameLength bounds the display name of a saved preset
const MaxPresetNameLength = 120

// FilterPreset is a named filter bag saved by a user for one resource page
type FilterPreset struct {
	ID          string      `json:"id" db:"id"`
	UserUID     string      `json:"userUid" db:"user_uid"`
	Resource    Resource    `json:"resource" db:"resource"`
	Name        string      `json:"name" db:"name"`
	Filters     filters.Bag `json:"filters" db:"filters"`
	ActiveCount int         `json:"activeCount" db:"active_count"`
	IsDefault   bool        `json:"isDefault" db:"is_default"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	LastUsedAt  time.Time   `json:"lastUsedAt" db:"last_used_at"`
}
