package service

import (
	"context"
	"fmt"
	"strings"

	"projectledger/logger"
	"projectledger/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxDescriptionLen = 255

// maxAmount DECIMAL(12,2) 可容纳的最大值
var maxAmount = decimal.RequireFromString("9999999999.99")

// 金额输入的长度和指数范围，超出的输入在比较之前拒绝
const (
	maxAmountInputLen = 32
	minAmountExponent = -maxAmountInputLen
	maxAmountExponent = 10
)

// LedgerService 项目支出账本（只追加）
type LedgerService struct {
	db       *gorm.DB
	log      *logger.Logger
	projects *ProjectService
}

// NewLedgerService 创建账本服务
func NewLedgerService(db *gorm.DB, log *logger.Logger, projects *ProjectService) *LedgerService {
	return &LedgerService{db: db, log: log, projects: projects}
}

// ParseAmount 解析金额：非负有限十进制数，按分四舍五入
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxAmountInputLen {
		return decimal.Zero, ErrInvalidAmount
	}
	// decimal 不接受 NaN/Inf，科学计数法可以接受
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	// 比较和舍入会按指数放大系数，先限制指数
	if exp := amount.Exponent(); exp < minAmountExponent || exp > maxAmountExponent {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.IsNegative() || amount.GreaterThan(maxAmount) {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount.Round(2), nil
}

// Add 追加一条支出，作者为当前会话用户
func (s *LedgerService) Add(ctx context.Context, caller models.Session, projectID uint, description, amount string) (*models.Expense, error) {
	if err := s.projects.exists(ctx, projectID); err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, invalid("描述不能为空")
	}
	if len([]rune(description)) > maxDescriptionLen {
		return nil, invalid(fmt.Sprintf("描述不能超过 %d 个字符", maxDescriptionLen))
	}
	value, err := ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		ProjectID:   projectID,
		UserID:      caller.UserID,
		Description: description,
		Amount:      value,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("创建支出失败: %w", err)
	}
	s.log.Debug().Uint("expense_id", expense.ID).Uint("project_id", projectID).Uint("user_id", caller.UserID).Msg("支出已记录")
	return &expense, nil
}

// List 返回调用者可见的支出，按创建顺序
// 管理员看到全部，普通成员只看到自己的
func (s *LedgerService) List(ctx context.Context, projectID uint, caller models.Session) ([]models.ExpenseLine, error) {
	lines := make([]models.ExpenseLine, 0)
	query := s.db.WithContext(ctx).Model(&models.Expense{}).
		Select("expenses.*, users.username AS author_name").
		Joins("LEFT JOIN users ON expenses.user_id = users.id").
		Where("expenses.project_id = ?", projectID)

	if !caller.IsAdmin() {
		query = query.Where("expenses.user_id = ?", caller.UserID)
	}

	if err := query.Order("expenses.id ASC").Scan(&lines).Error; err != nil {
		return nil, fmt.Errorf("查询支出失败: %w", err)
	}
	return lines, nil
}

// Total 调用者可见支出的合计，没有记录时为 0
func (s *LedgerService) Total(ctx context.Context, projectID uint, caller models.Session) (decimal.Decimal, error) {
	lines, err := s.List(ctx, projectID, caller)
	if err != nil {
		return decimal.Zero, err
	}
	return Sum(lines), nil
}

// Sum 逐条累加金额
func Sum(lines []models.ExpenseLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}
