package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense 项目支出记录，创建后不可修改
type Expense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	ProjectID   uint            `json:"project_id" gorm:"index;not null"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Description string          `json:"description" gorm:"size:255;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// ExpenseLine 带作者用户名的支出记录（列表、导出使用）
type ExpenseLine struct {
	Expense
	AuthorName string `json:"author_name" gorm:"column:author_name"`
}
