// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"membertrack-server/membership"

	"gorm.io/gorm"
)

var AllModels []any

// Member is one membership record. MemberID follows the M<digits>
// convention for generated IDs; hand-entered IDs outside the pattern
// are kept as valid keys. StartDate is immutable after creation.
// Status is persisted for inspection of the raw tables but is always
// recomputed from EndDate before use.
type Member struct {
	ID        uint              `gorm:"primaryKey"`
	MemberID  string            `gorm:"size:10;not null;uniqueIndex"`
	Name      string            `gorm:"size:255;not null"`
	Email     string            `gorm:"size:255"`
	Phone     string            `gorm:"size:50"`
	StartDate *time.Time        `gorm:"type:date"`
	EndDate   *time.Time        `gorm:"type:date"`
	PlanType  string            `gorm:"size:50"`
	Status    membership.Status `gorm:"size:20"`
	Notes     string            `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// RefreshStatus recomputes the derived status in place.
func (m *Member) RefreshStatus(today time.Time) {
	m.Status = membership.DeriveStatus(m.EndDate, today)
}

func init() {
	AllModels = append(AllModels, &Member{})
}
