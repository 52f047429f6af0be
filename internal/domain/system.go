package domain

import (
	"time"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"
)

// SysOpr is an operator account allowed to change the catalogue.
type SysOpr struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Realname  string    `json:"realname"`
	Email     string    `json:"email"`
	Username  string    `gorm:"size:64;uniqueIndex" json:"username"`
	Password  string    `json:"-"`
	Level     string    `json:"level"`
	Status    string    `json:"status"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName Specify table name
func (SysOpr) TableName() string {
	return "sys_opr"
}

// SysOprLog records one mutating API call.
type SysOprLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OprName   string    `gorm:"size:64;index" json:"oprName"`
	OprIp     string    `gorm:"size:64" json:"oprIp"`
	OptAction string    `gorm:"size:16" json:"optAction"`
	OptDesc   string    `gorm:"size:512" json:"optDesc"`
	Status    int       `json:"status"`
	OptTime   time.Time `gorm:"index" json:"optTime"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
