package leavetype

type LeaveTypeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AnnualAllowance int    `json:"annual_allowance"`
}
