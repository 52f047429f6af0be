package app

import (
	"errors"
	"strings"
	"time"

	"github.com/artauction/auctionapi/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultCategories are created on first start.
var DefaultCategories = []string{"Painting", "Sculpture", "Photography", "Printmaking", "Digital"}

// checkSuper makes sure the configured admin operator exists and can log in.
func (a *Application) checkSuper() {
	username := a.appConfig.Jwt.AdminUsername
	password := a.appConfig.Jwt.AdminPassword
	if username == "" || password == "" {
		return
	}

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", username).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash admin password", zap.Error(err))
			return
		}
		if err := a.gormDB.Create(&domain.SysOpr{
			Realname:  "administrator",
			Email:     "N/A",
			Username:  username,
			Password:  string(hashed),
			Level:     "super",
			Status:    domain.ENABLED,
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", username))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetStatus := !strings.EqualFold(operator.Status, domain.ENABLED)
	if !resetPassword && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			zap.L().Error("failed to hash admin password", zap.Error(err))
			return
		}
		updates["password"] = string(hashed)
	}
	if resetStatus {
		updates["status"] = domain.ENABLED
	}
	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default super admin account",
		zap.String("username", username),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("statusEnabled", resetStatus))
}

// checkCategories seeds the category list when it is empty.
func (a *Application) checkCategories() {
	var count int64
	if err := a.gormDB.Model(&domain.Category{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	for _, name := range DefaultCategories {
		c := domain.Category{Name: name}
		c.Version = 1
		if err := a.gormDB.Create(&c).Error; err != nil {
			zap.L().Error("failed to create default category", zap.String("name", name), zap.Error(err))
			continue
		}
		zap.L().Info("initialized default category", zap.String("name", name))
	}
}
