// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventCategory string
type EventAction string

const (
	MemberEvent EventCategory = "MEMBER"
	PlanEvent   EventCategory = "PLAN"
)

const (
	Created  EventAction = "CREATED"
	Updated  EventAction = "UPDATED"
	Renewed  EventAction = "RENEWED"
	Deleted  EventAction = "DELETED"
	Replaced EventAction = "REPLACED"
)

// EventLog records every mutating operation against the member set or
// the plan catalog.
type EventLog struct {
	ID          uint          `gorm:"primaryKey"`
	EID         uuid.UUID     `gorm:"type:uuid;not null"`
	Category    EventCategory `gorm:"size:50;not null;index"`
	Action      EventAction   `gorm:"size:50;not null"`
	MemberID    *string       `gorm:"size:10;default:null"`
	Description *string       `gorm:"type:text;default:null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (eventLog *EventLog) BeforeCreate(tx *gorm.DB) (err error) {
	if eventLog.EID == uuid.Nil {
		eventLog.EID = uuid.New()
	}
	return
}

// NewEvent builds an event with its EID assigned so the flat-file
// backend, which has no BeforeCreate hook, gets one too.
func NewEvent(category EventCategory, action EventAction, memberID, description *string) EventLog {
	return EventLog{
		EID:         uuid.New(),
		Category:    category,
		Action:      action,
		MemberID:    memberID,
		Description: description,
		CreatedAt:   time.Now(),
	}
}

func init() {
	AllModels = append(AllModels, &EventLog{})
}
