// SPDX-License-Identifier: GPL-3.0-only

package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"membertrack-server/membership"
	"membertrack-server/models"

	"github.com/google/uuid"
)

// csvStore is the flat-file edition: members, plans and events each
// live in one delimited file under the data directory. Every mutation
// rewrites the affected file whole; the datasets are small enough that
// this mirrors the original system's load-mutate-save cycle exactly.
// The mutex only serializes writers inside this process. Cross-process
// edits stay last-writer-wins, a known limitation carried over rather
// than fixed.
type csvStore struct {
	mu         sync.Mutex
	membersCSV string
	plansCSV   string
	eventsCSV  string
}

var memberHeader = []string{"MemberID", "Name", "Email", "Phone", "StartDate", "EndDate", "PlanType", "Status", "Notes"}
var planHeader = []string{"Plan", "DurationMonths"}
var eventHeader = []string{"EID", "Category", "Action", "MemberID", "Description", "CreatedAt"}

func NewCSVStore(dataDir string) (Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dataDir, err)
	}
	s := &csvStore{
		membersCSV: filepath.Join(dataDir, "members.csv"),
		plansCSV:   filepath.Join(dataDir, "plans.csv"),
		eventsCSV:  filepath.Join(dataDir, "events.csv"),
	}
	if err := s.ensureFiles(); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureFiles creates missing files with their headers and seeds the
// default plan catalog, the flat-file counterpart of the relational
// seed migration.
func (s *csvStore) ensureFiles() error {
	if _, err := os.Stat(s.membersCSV); os.IsNotExist(err) {
		if err := writeAll(s.membersCSV, memberHeader, nil); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.eventsCSV); os.IsNotExist(err) {
		if err := writeAll(s.eventsCSV, eventHeader, nil); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.plansCSV); os.IsNotExist(err) {
		if err := s.writePlans(models.DefaultPlanCatalog()); err != nil {
			return err
		}
	}
	return nil
}

func (s *csvStore) LoadMembers() ([]models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.readMembers()
	if err != nil {
		return nil, err
	}
	refreshStatuses(members, time.Now())
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i].EndDate, members[j].EndDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return members, nil
}

func (s *csvStore) GetMember(memberID string) (*models.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.readMembers()
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].MemberID == memberID {
			members[i].RefreshStatus(time.Now())
			return &members[i], nil
		}
	}
	return nil, ErrNotFound
}

func (s *csvStore) CreateMember(member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.readMembers()
	if err != nil {
		return err
	}
	member.RefreshStatus(time.Now())
	members = append(members, member)
	return s.writeMembers(members)
}

func (s *csvStore) UpdateMember(member models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.readMembers()
	if err != nil {
		return err
	}
	member.RefreshStatus(time.Now())
	for i := range members {
		if members[i].MemberID == member.MemberID {
			members[i] = member
			return s.writeMembers(members)
		}
	}
	return ErrNotFound
}

func (s *csvStore) DeleteMember(memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	members, err := s.readMembers()
	if err != nil {
		return err
	}
	for i := range members {
		if members[i].MemberID == memberID {
			members = append(members[:i], members[i+1:]...)
			return s.writeMembers(members)
		}
	}
	return ErrNotFound
}

func (s *csvStore) LoadPlans() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := readAll(s.plansCSV)
	if err != nil {
		return nil, err
	}
	catalog := make(map[string]int, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		months, err := strconv.Atoi(row[1])
		if err != nil {
			continue
		}
		catalog[row[0]] = months
	}
	return catalog, nil
}

func (s *csvStore) SavePlans(catalog map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writePlans(catalog)
}

func (s *csvStore) AppendEvent(event models.EventLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := os.OpenFile(s.eventsCSV, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.eventsCSV, err)
	}
	defer file.Close()
	if event.EID == uuid.Nil {
		event.EID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	w := csv.NewWriter(file)
	if err := w.Write(eventRow(event)); err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	w.Flush()
	return w.Error()
}

func (s *csvStore) LoadEvents(page, pageSize int) ([]models.EventLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := readAll(s.eventsCSV)
	if err != nil {
		return nil, 0, err
	}
	events := make([]models.EventLog, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		events = append(events, parseEventRow(row))
	}
	// Newest first, matching the relational backend's ordering.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	total := int64(len(events))
	start := (page - 1) * pageSize
	if start >= len(events) {
		return []models.EventLog{}, total, nil
	}
	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}
	return events[start:end], total, nil
}

func (s *csvStore) readMembers() ([]models.Member, error) {
	rows, err := readAll(s.membersCSV)
	if err != nil {
		return nil, err
	}
	members := make([]models.Member, 0, len(rows))
	for _, row := range rows {
		if len(row) < 9 {
			continue
		}
		members = append(members, parseMemberRow(row))
	}
	return members, nil
}

func (s *csvStore) writeMembers(members []models.Member) error {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, memberRow(m))
	}
	return writeAll(s.membersCSV, memberHeader, rows)
}

func (s *csvStore) writePlans(catalog map[string]int) error {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(catalog[name])})
	}
	return writeAll(s.plansCSV, planHeader, rows)
}

func memberRow(m models.Member) []string {
	return []string{
		m.MemberID,
		m.Name,
		m.Email,
		m.Phone,
		membership.FormatDate(m.StartDate),
		membership.FormatDate(m.EndDate),
		m.PlanType,
		string(m.Status),
		m.Notes,
	}
}

func parseMemberRow(row []string) models.Member {
	m := models.Member{
		MemberID: row[0],
		Name:     row[1],
		Email:    row[2],
		Phone:    row[3],
		PlanType: row[6],
		Status:   membership.Status(row[7]),
		Notes:    row[8],
	}
	if d, ok := membership.ParseDate(row[4]); ok {
		m.StartDate = &d
	}
	if d, ok := membership.ParseDate(row[5]); ok {
		m.EndDate = &d
	}
	return m
}

func eventRow(e models.EventLog) []string {
	memberID := ""
	if e.MemberID != nil {
		memberID = *e.MemberID
	}
	description := ""
	if e.Description != nil {
		description = *e.Description
	}
	return []string{
		e.EID.String(),
		string(e.Category),
		string(e.Action),
		memberID,
		description,
		e.CreatedAt.Format(time.RFC3339),
	}
}

func parseEventRow(row []string) models.EventLog {
	e := models.EventLog{
		Category: models.EventCategory(row[1]),
		Action:   models.EventAction(row[2]),
	}
	if eid, err := uuid.Parse(row[0]); err == nil {
		e.EID = eid
	}
	if row[3] != "" {
		memberID := row[3]
		e.MemberID = &memberID
	}
	if row[4] != "" {
		description := row[4]
		e.Description = &description
	}
	if t, err := time.Parse(time.RFC3339, row[5]); err == nil {
		e.CreatedAt = t
	}
	return e
}

// readAll returns the data rows of a delimited file, skipping the
// header. FieldsPerRecord is relaxed so a hand-edited file with a
// short row degrades to that row being skipped, not a load failure.
func readAll(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func writeAll(path string, header []string, rows [][]string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		file.Close()
		return fmt.Errorf("failed to write header to %s: %w", tmp, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			file.Close()
			return fmt.Errorf("failed to write row to %s: %w", tmp, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
