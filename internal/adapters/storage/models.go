package storage

import "time"

// WorkspaceModel is the GORM model for the workspaces table
type WorkspaceModel struct {
	CreatedAt    time.Time
	IsRepository bool      `gorm:"not null;default:false"`
	LastBranch   string    `gorm:"default:''"`
	LastOpenedAt time.Time `gorm:"not null;index:idx_last_opened_at"`
	Path         string    `gorm:"primaryKey"`
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (WorkspaceModel) TableName() string { return "workspaces" }
