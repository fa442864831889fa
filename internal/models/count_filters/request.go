package models

import "io.winapps.adminconsole/internal/filters"

type CountFiltersRequest struct {
	Filters filters.Bag `json:"filters"`
}
