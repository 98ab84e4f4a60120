// SPDX-License-Identifier: GPL-3.0-only

// Bulk member import tool. Reads a members CSV (the same columns the
// export endpoint produces) and inserts the rows through the regular
// store layer, so IDs, statuses and end dates come out exactly as if
// each member had been added through the API.
//
// Usage:
//
//	go run ./cmd -file members.csv
//	go run ./cmd -file members.csv -backend csv -data-dir ./data
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"membertrack-server/membership"
	"membertrack-server/models"
	"membertrack-server/store"
)

type Config struct {
	File    string
	Backend string
	DataDir string
	DryRun  bool
}

func main() {
	var config Config
	flag.StringVar(&config.File, "file", "", "members CSV file to import (required)")
	flag.StringVar(&config.Backend, "backend", "db", "storage backend: db or csv")
	flag.StringVar(&config.DataDir, "data-dir", "data", "data directory for the csv backend")
	flag.BoolVar(&config.DryRun, "dry-run", false, "parse and validate without writing")
	flag.Parse()

	if config.File == "" {
		flag.Usage()
		os.Exit(2)
	}

	s, err := openStore(config)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	imported, skipped, err := runImport(s, config)
	if err != nil {
		log.Fatalf("import: %v", err)
	}
	log.Printf("done: %d imported, %d skipped", imported, skipped)
}

func openStore(config Config) (store.Store, error) {
	if config.Backend == "csv" {
		return store.NewCSVStore(config.DataDir)
	}
	return store.NewGormStore()
}

func runImport(s store.Store, config Config) (imported, skipped int, err error) {
	file, err := os.Open(config.File)
	if err != nil {
		return 0, 0, fmt.Errorf("open %s: %w", config.File, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("read %s: %w", config.File, err)
	}
	if len(rows) <= 1 {
		return 0, 0, nil
	}

	existing, err := s.LoadMembers()
	if err != nil {
		return 0, 0, fmt.Errorf("load existing members: %w", err)
	}
	catalog, err := s.LoadPlans()
	if err != nil {
		return 0, 0, fmt.Errorf("load plans: %w", err)
	}

	ids := map[string]bool{}
	emails := map[string]bool{}
	for _, m := range existing {
		ids[m.MemberID] = true
		if m.Email != "" {
			emails[strings.ToLower(m.Email)] = true
		}
	}
	knownIDs := make([]string, 0, len(existing))
	for _, m := range existing {
		knownIDs = append(knownIDs, m.MemberID)
	}

	for i, row := range rows[1:] {
		line := i + 2
		member, ok := parseRow(row)
		if !ok {
			log.Printf("line %d: malformed row, skipping", line)
			skipped++
			continue
		}
		if member.Name == "" {
			log.Printf("line %d: missing name, skipping", line)
			skipped++
			continue
		}
		if member.MemberID == "" {
			member.MemberID = membership.GenerateMemberID(knownIDs)
		}
		if ids[member.MemberID] {
			log.Printf("line %d: duplicate member ID %s, skipping", line, member.MemberID)
			skipped++
			continue
		}
		if member.Email != "" && emails[strings.ToLower(member.Email)] {
			log.Printf("line %d: duplicate email %s, skipping", line, member.Email)
			skipped++
			continue
		}
		if member.EndDate == nil && member.StartDate != nil {
			end := membership.PlanEndDate(*member.StartDate, member.PlanType, catalog)
			member.EndDate = &end
		}

		if config.DryRun {
			log.Printf("line %d: would import %s (%s)", line, member.MemberID, member.Name)
		} else if err := s.CreateMember(member); err != nil {
			return imported, skipped, fmt.Errorf("line %d: create %s: %w", line, member.MemberID, err)
		}

		ids[member.MemberID] = true
		if member.Email != "" {
			emails[strings.ToLower(member.Email)] = true
		}
		knownIDs = append(knownIDs, member.MemberID)
		imported++
	}
	return imported, skipped, nil
}

// parseRow accepts MemberID,Name,Email,Phone,StartDate,EndDate,PlanType
// with optional trailing Status and Notes columns. Status in the file
// is ignored; it is derived on write like everywhere else.
func parseRow(row []string) (models.Member, bool) {
	if len(row) < 7 {
		return models.Member{}, false
	}
	m := models.Member{
		MemberID: strings.TrimSpace(row[0]),
		Name:     strings.TrimSpace(row[1]),
		Email:    strings.TrimSpace(row[2]),
		Phone:    strings.TrimSpace(row[3]),
		PlanType: strings.TrimSpace(row[6]),
	}
	if len(row) >= 9 {
		m.Notes = strings.TrimSpace(row[8])
	}
	if d, ok := membership.ParseDate(row[4]); ok {
		m.StartDate = &d
	}
	if d, ok := membership.ParseDate(row[5]); ok {
		m.EndDate = &d
	}
	return m, true
}
