package model

// Stats counts the records held for each entity.
type Stats struct {
	Products  int64 `json:"products" db:"products"`
	Customers int64 `json:"customers" db:"customers"`
	Sales     int64 `json:"sales" db:"sales"`
	Employees int64 `json:"employees" db:"employees"`
}

// ValidationReport lists data quality problems found in the store.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
