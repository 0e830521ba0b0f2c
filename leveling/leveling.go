package leveling

import (
	"fmt"

	"contenthub/errs"
)

// Curve 定义升级曲线：第 level 级需要 Base + (level-1)*Increment 经验
type Curve struct {
	Base      int64
	Increment int64
}

// DefaultCurve 平台默认曲线
var DefaultCurve = Curve{Base: 100, Increment: 75}

// Info 由累计经验推导出的等级信息，不落库，每次按账本总额重算
type Info struct {
	Level          int   `json:"level"`
	XPIntoLevel    int64 `json:"xp_into_level"`
	XPRequired     int64 `json:"xp_required"`
	TotalXPForNext int64 `json:"total_xp_for_next"`
}

// CostForLevel 返回从 level 级升到 level+1 级所需经验，level 从 1 开始
func (c Curve) CostForLevel(level int) (int64, error) {
	if level < 1 {
		return 0, errs.InvalidArgument(fmt.Sprintf("level must be >= 1, got %d", level))
	}
	return c.Base + int64(level-1)*c.Increment, nil
}

// Compute 把累计经验换算为等级与当前级进度。
// 从 1 级开始逐级扣减本级消耗，剩余不足一级消耗时停止，
// 保证 XPIntoLevel < XPRequired 恒成立（攒满即升级，不存在满条不升）。
func (c Curve) Compute(totalXP int64) (Info, error) {
	if totalXP < 0 {
		return Info{}, errs.InvalidArgument(fmt.Sprintf("total experience must be >= 0, got %d", totalXP))
	}

	level := 1
	remaining := totalXP
	cost, err := c.CostForLevel(level)
	if err != nil {
		return Info{}, err
	}
	for remaining >= cost {
		remaining -= cost
		level++
		if cost, err = c.CostForLevel(level); err != nil {
			return Info{}, err
		}
	}

	return Info{
		Level:          level,
		XPIntoLevel:    remaining,
		XPRequired:     cost,
		TotalXPForNext: totalXP - remaining + cost,
	}, nil
}
