package leavetype

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// defaultAllowances are the per-year day grants the portal ships with.
var defaultAllowances = map[string]int{
	"Sick":         12,
	"Casual":       8,
	"Earned":       15,
	"Maternity":    90,
	"Compensatory": 5,
}

// Seed inserts the built-in leave types. Existing rows are left alone so
// an operator can adjust allowances without them being reset on restart.
func Seed(db *gorm.DB) error {
	for name, allowance := range defaultAllowances {
		lt := LeaveType{
			ID:              uuid.New(),
			Name:            name,
			AnnualAllowance: allowance,
		}
		err := db.Where("name = ?", name).
			Attrs(lt).
			FirstOrCreate(&LeaveType{}).Error
		if err != nil {
			return err
		}
	}

	zap.L().Named("leavetype.seed").Info("leave types seeded", zap.Int("count", len(defaultAllowances)))
	return nil
}
