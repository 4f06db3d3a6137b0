package database

import (
	"fmt"

	"bizintel/internal/config"
	"bizintel/internal/model"
)

// Dialect renders the driver-specific SQL fragments used by date aggregations.
type Dialect interface {
	// Name returns the configured driver name.
	Name() string

	// Bucket returns an expression grouping column by the given period.
	Bucket(period model.Period, column string) (string, error)

	// Month returns an expression formatting column as YYYY-MM.
	Month(column string) string
}

// DialectFor returns the dialect of a configured driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverSQLite:
		return sqliteDialect{}, nil
	case config.DriverPostgres:
		return postgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string { return config.DriverSQLite }

func (d sqliteDialect) Bucket(period model.Period, column string) (string, error) {
	switch period {
	case model.PeriodDaily:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column), nil
	case model.PeriodWeekly:
		return fmt.Sprintf("strftime('%%Y-W%%W', %s)", column), nil
	case model.PeriodMonthly:
		return d.Month(column), nil
	default:
		return "", model.ErrInvalidPeriod
	}
}

func (sqliteDialect) Month(column string) string {
	return fmt.Sprintf("strftime('%%Y-%%m', %s)", column)
}

type postgresDialect struct{}

func (postgresDialect) Name() string { return config.DriverPostgres }

func (d postgresDialect) Bucket(period model.Period, column string) (string, error) {
	switch period {
	case model.PeriodDaily:
		return fmt.Sprintf("to_char(%s, 'YYYY-MM-DD')", column), nil
	case model.PeriodWeekly:
		return fmt.Sprintf(`to_char(%s, 'IYYY-"W"IW')`, column), nil
	case model.PeriodMonthly:
		return d.Month(column), nil
	default:
		return "", model.ErrInvalidPeriod
	}
}

func (postgresDialect) Month(column string) string {
	return fmt.Sprintf("to_char(%s, 'YYYY-MM')", column)
}
