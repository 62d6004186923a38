package employee

type UpdateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required"`
	Role        string  `json:"role" binding:"required,oneof=EMPLOYEE MANAGER"`
	ReportingTo *string `json:"reporting_to" binding:"omitempty,uuid"`
}

type EmployeeResponse struct {
	ID          string  `json:"id"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	ReportingTo *string `json:"reporting_to,omitempty"`
}

// EmployeeOption is the slim shape the portal uses for dropdowns.
type EmployeeOption struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}
