package sheetstore

import "strings"

const (
	SheetEmployees = "Employees"
	SheetPositions = "Positions"
	SheetSettings  = "Settings"
)

// Employee column order is the wire format of the workbook. The order here
// IS the schema: a header row that differs triggers the migrate path.
const (
	ColEmpID = iota
	ColFirstName
	ColLastName
	ColPhone
	ColEmail
	ColPosition
	ColStatus
	ColNote
	ColPhotoURL
	ColCreatedDate
	ColLastModified
	ColIsManager
	ColIsAssistantManager
)

var employeeHeader = []string{
	"ID",
	"First Name",
	"Last Name",
	"Phone",
	"Email",
	"Position",
	"Status",
	"Note",
	"Photo URL",
	"Created Date",
	"Last Modified",
	"Is Manager",
	"Is Assistant Manager",
}

var positionHeader = []string{"Name", "Icon"}

var settingsHeader = []string{"Key", "Value"}

func headerFor(sheet string) []string {
	switch sheet {
	case SheetPositions:
		return positionHeader
	case SheetSettings:
		return settingsHeader
	default:
		return employeeHeader
	}
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

func headerMatches(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// CellValue reads a cell defensively: excelize trims trailing empty cells,
// so data rows are often shorter than the header.
func CellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
