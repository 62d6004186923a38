package leave

import "go-portal/internal/leavetype"

// ComputeBalances derives the per-type ledger from the annual allowances and
// the days already consumed. Balances never go negative even if an operator
// lowers an allowance below what was already approved.
func ComputeBalances(types []leavetype.LeaveType, used map[string]int) []BalanceResponse {
	balances := make([]BalanceResponse, len(types))
	for i, lt := range types {
		u := used[lt.Name]
		remaining := lt.AnnualAllowance - u
		if remaining < 0 {
			remaining = 0
		}
		balances[i] = BalanceResponse{
			LeaveTypeName:   lt.Name,
			AnnualAllowance: lt.AnnualAllowance,
			UsedDays:        u,
			BalanceDays:     remaining,
		}
	}
	return balances
}
