// SPDX-License-Identifier: GPL-3.0-only

// Package store is the persistence layer. Both editions of the tracker
// live here behind one narrow interface: a relational backend (sqlite,
// mysql or postgres through GORM) and a flat delimited-file backend.
// Handlers never see which one is active.
package store

import (
	"errors"
	"strings"
	"time"

	"membertrack-server/commons"
	"membertrack-server/models"
)

// ErrNotFound is returned by both backends when a member ID does not
// exist.
var ErrNotFound = errors.New("member not found")

type Store interface {
	LoadMembers() ([]models.Member, error)
	GetMember(memberID string) (*models.Member, error)
	CreateMember(member models.Member) error
	UpdateMember(member models.Member) error
	DeleteMember(memberID string) error

	LoadPlans() (map[string]int, error)
	SavePlans(catalog map[string]int) error

	AppendEvent(event models.EventLog) error
	LoadEvents(page, pageSize int) ([]models.EventLog, int64, error)
}

// Conn is the active backend, set once at startup. Mirrors the single
// process-wide DB handle of the original system; concurrent multi-user
// edits remain last-writer-wins.
var Conn Store

// InitStore selects and initializes the backend from STORAGE_BACKEND:
// "csv" for the flat-file edition, anything else (default "db") for
// the relational edition.
func InitStore() {
	backend := strings.ToLower(commons.GetEnv("STORAGE_BACKEND", "db"))
	var err error
	switch backend {
	case "csv":
		dataDir := commons.GetEnv("DATA_DIR", "data")
		commons.Logger.Infof("Using flat-file storage backend, data dir: %s", dataDir)
		Conn, err = NewCSVStore(dataDir)
	default:
		commons.Logger.Info("Using relational storage backend")
		Conn, err = NewGormStore()
	}
	if err != nil {
		commons.Logger.Fatalf("Failed to initialize storage backend: %v", err)
	}
}

// refreshStatuses reapplies the derived status to every record. Every
// backend calls this on load so stored status values are overwritten
// before anyone can read them.
func refreshStatuses(members []models.Member, today time.Time) {
	for i := range members {
		members[i].RefreshStatus(today)
	}
}
