package employee

// EmployeeRecord is the wire shape of one employee in bulk payloads.
// No binding tags: replaceAll validates per record so one bad row does not
// reject the whole import.
type EmployeeRecord struct {
	EmpID              string `json:"empId"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Position           string `json:"position"`
	Status             string `json:"status"`
	Note               string `json:"note"`
	PhotoURL           string `json:"photoUrl"`
	CreatedDate        string `json:"createdDate"`
	LastModified       string `json:"lastModified"`
	IsManager          bool   `json:"isManager"`
	IsAssistantManager bool   `json:"isAssistantManager"`
}

type CreateEmployeeRequest struct {
	EmpID              string `json:"empId" binding:"required"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Phone              string `json:"phone"`
	Email              string `json:"email" binding:"omitempty,email"`
	Position           string `json:"position"`
	Status             string `json:"status" binding:"omitempty,oneof=Active Inactive"`
	Note               string `json:"note"`
	PhotoURL           string `json:"photoUrl"`
	IsManager          bool   `json:"isManager"`
	IsAssistantManager bool   `json:"isAssistantManager"`
}

type UpdateEmployeeRequest struct {
	OriginalID string         `json:"originalId" binding:"required"`
	Employee   EmployeeRecord `json:"employee" binding:"required"`
}

type DeleteEmployeeRequest struct {
	EmpID string `json:"empId" binding:"required"`
}

type ReplaceAllEmployeesRequest struct {
	Employees []EmployeeRecord `json:"employees" binding:"required"`
}

type EmployeeResponse struct {
	EmpID              string `json:"empId"`
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	Position           string `json:"position"`
	Status             string `json:"status"`
	Note               string `json:"note"`
	PhotoURL           string `json:"photoUrl,omitempty"`
	CreatedDate        string `json:"createdDate,omitempty"`
	LastModified       string `json:"lastModified,omitempty"`
	IsManager          bool   `json:"isManager"`
	IsAssistantManager bool   `json:"isAssistantManager"`
	IsMe               bool   `json:"isMe"`
}

// RecordError describes one rejected record inside a bulk import.
type RecordError struct {
	Index  int    `json:"index"`
	EmpID  string `json:"empId,omitempty"`
	Reason string `json:"reason"`
}

type ReplaceAllResult struct {
	Imported int           `json:"imported"`
	Skipped  []RecordError `json:"skipped,omitempty"`
}
