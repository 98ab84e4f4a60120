// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"strings"
	"time"

	"membertrack-server/membership"
	"membertrack-server/models"
)

// memberFilter narrows a loaded member set the way the original
// dashboard filters did: free-text search over name, email and phone,
// plus status and plan multi-selects. Empty slices mean "all".
type memberFilter struct {
	Search   string
	Statuses []string
	Plans    []string
}

func (f memberFilter) apply(members []models.Member) []models.Member {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if search != "" &&
			!strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Email), search) &&
			!strings.Contains(strings.ToLower(m.Phone), search) {
			continue
		}
		if len(f.Statuses) > 0 && !containsFold(f.Statuses, string(m.Status)) {
			continue
		}
		if len(f.Plans) > 0 && !containsFold(f.Plans, m.PlanType) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func containsFold(haystack []string, needle string) bool {
	for _, v := range haystack {
		if strings.EqualFold(v, needle) {
			return true
		}
	}
	return false
}

func memberDetails(m models.Member, today time.Time) MemberDetails {
	return MemberDetails{
		MemberID:     m.MemberID,
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		StartDate:    membership.FormatDate(m.StartDate),
		EndDate:      membership.FormatDate(m.EndDate),
		PlanType:     m.PlanType,
		Status:       string(m.Status),
		Notes:        m.Notes,
		ExpiringSoon: membership.ExpiringSoon(m.EndDate, today),
	}
}

// emailTaken reports whether a non-empty email is already used by a
// different member, compared case-insensitively.
func emailTaken(members []models.Member, email, excludeMemberID string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, m := range members {
		if m.MemberID == excludeMemberID {
			continue
		}
		if m.Email != "" && strings.ToLower(m.Email) == email {
			return true
		}
	}
	return false
}

func memberIDs(members []models.Member) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.MemberID)
	}
	return ids
}
