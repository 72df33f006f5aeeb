package models

import "time"

// Report 项目报告，自由文本，创建后不可修改
type Report struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProjectID uint      `json:"project_id" gorm:"index;not null"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Report) TableName() string {
	return "reports"
}

// ReportLine 带作者用户名的报告
type ReportLine struct {
	Report
	AuthorName string `json:"author_name" gorm:"column:author_name"`
}
