package payslip

type IssuePayslipRequest struct {
	OwnerID    string `json:"owner_id" binding:"required,uuid"`
	Period     string `json:"period" binding:"required"`
	BaseSalary string `json:"base_salary" binding:"required"`
	Allowance  string `json:"allowance" binding:"required"`
	Deduction  string `json:"deduction" binding:"required"`
}

type PayslipResponse struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	Period     string `json:"period"`
	BaseSalary string `json:"base_salary"`
	Allowance  string `json:"allowance"`
	Deduction  string `json:"deduction"`
	NetSalary  string `json:"net_salary"`
	IssuedAt   string `json:"issued_at"`
}
