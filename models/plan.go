// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"membertrack-server/commons"

	"gorm.io/gorm"
)

// Plan is one row of the membership plan catalog.
type Plan struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:50;not null;uniqueIndex"`
	DurationMonths int    `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// DefaultPlanCatalog returns the seed catalog. Durations can be
// overridden per tier through PLAN_BRONZE, PLAN_SILVER, PLAN_GOLD and
// PLAN_PLATINUM environment variables.
func DefaultPlanCatalog() map[string]int {
	return map[string]int{
		"Bronze":   commons.GetEnvInt("PLAN_BRONZE", 3),
		"Silver":   commons.GetEnvInt("PLAN_SILVER", 6),
		"Gold":     commons.GetEnvInt("PLAN_GOLD", 9),
		"Platinum": commons.GetEnvInt("PLAN_PLATINUM", 12),
	}
}

func init() {
	AllModels = append(AllModels, &Plan{})
}
