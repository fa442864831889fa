package models

type CountFiltersResponse struct {
	Count        int      `json:"count"`
	HasActive    bool     `json:"hasActive"`
	ActiveFields []string `json:"activeFields"`
}
