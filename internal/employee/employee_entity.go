package employee

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// Employee is one row of the Employees sheet. EmpID is the unique key;
// IsMe never hits the workbook, it is derived from the current-user marker
// at read time.
type Employee struct {
	EmpID              string
	FirstName          string
	LastName           string
	Phone              string
	Email              string
	Position           string
	Status             string
	Note               string
	PhotoURL           string
	CreatedDate        time.Time
	LastModified       time.Time
	IsManager          bool
	IsAssistantManager bool
}
