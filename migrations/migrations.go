// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"membertrack-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "001_seed_default_plans",
			Migrate: func(tx *gorm.DB) error {
				var count int64
				if err := tx.Model(&models.Plan{}).Count(&count).Error; err != nil {
					return fmt.Errorf("failed to count plans: %w", err)
				}
				if count > 0 {
					return nil
				}
				for name, months := range models.DefaultPlanCatalog() {
					plan := models.Plan{Name: name, DurationMonths: months}
					if err := tx.Create(&plan).Error; err != nil {
						return fmt.Errorf("failed to create plan %s: %w", name, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Unscoped().Where("1 = 1").Delete(&models.Plan{}).Error
			},
		},
	}
}
