package model

// Employee is a staff member.
type Employee struct {
	ID         int64   `json:"id" db:"id"`
	Name       string  `json:"name" db:"name"`
	Department string  `json:"department" db:"department"`
	Salary     float64 `json:"salary" db:"salary"`
	HireDate   Date    `json:"hireDate" db:"hire_date"`
}

// EmployeeFilter narrows an employee listing.
// Search matches name or department.
type EmployeeFilter struct {
	Search     string
	Department string
	Limit      int
	Offset     int
}

// Validate checks the required fields of an employee.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return ValidationError("employee name is required")
	}
	if e.Salary < 0 {
		return ValidationError("employee salary must not be negative")
	}
	return nil
}
