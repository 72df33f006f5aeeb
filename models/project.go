package models

import "time"

// Project 项目模型，只由管理员创建
type Project struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (Project) TableName() string {
	return "projects"
}
