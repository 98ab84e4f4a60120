// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model CreateMemberRequest
type CreateMemberRequest struct {
	// Member ID; leave blank to auto-generate the next sequential ID
	MemberID string `json:"member_id" example:"M0007"`
	// Full name
	// required: true
	Name string `json:"name" example:"Jane Doe"`
	// Email address; uniqueness is enforced case-insensitively among
	// non-empty values
	Email string `json:"email" example:"jane@example.com"`
	// Phone number
	Phone string `json:"phone" example:"+23712345678"`
	// Membership start date (YYYY-MM-DD); defaults to today
	StartDate string `json:"start_date" example:"2026-01-15"`
	// Membership end date (YYYY-MM-DD); leave blank to compute from
	// the start date and plan duration
	EndDate string `json:"end_date" example:"2026-07-15"`
	// Plan name from the catalog
	PlanType string `json:"plan_type" example:"Silver"`
	// Free-text notes
	Notes string `json:"notes" example:"Paid cash"`
}

// swagger:model UpdateMemberRequest
type UpdateMemberRequest struct {
	// Full name
	Name string `json:"name" example:"Jane Doe"`
	// Email address
	Email string `json:"email" example:"jane@example.com"`
	// Phone number
	Phone string `json:"phone" example:"+23712345678"`
	// New end date (YYYY-MM-DD); leave blank to keep the current one
	EndDate string `json:"end_date" example:"2026-07-15"`
	// Plan name from the catalog
	PlanType string `json:"plan_type" example:"Gold"`
	// Free-text notes
	Notes string `json:"notes" example:"Upgraded at front desk"`
	// Optional quick renew: extend the end date by this many months
	// (1-60) after applying the edits above
	RenewMonths *int `json:"renew_months" example:"3"`
}

// swagger:model RenewMemberRequest
type RenewMemberRequest struct {
	// Months to extend the membership by (1-60)
	Months int `json:"months" example:"3"`
}

// swagger:model MemberDetails
type MemberDetails struct {
	MemberID  string `json:"member_id" example:"M0007"`
	Name      string `json:"name" example:"Jane Doe"`
	Email     string `json:"email" example:"jane@example.com"`
	Phone     string `json:"phone" example:"+23712345678"`
	StartDate string `json:"start_date" example:"2026-01-15"`
	EndDate   string `json:"end_date" example:"2026-07-15"`
	PlanType  string `json:"plan_type" example:"Silver"`
	Status    string `json:"status" example:"Active"`
	Notes     string `json:"notes" example:"Paid cash"`
	// Whether the end date falls within the next 30 days
	ExpiringSoon bool `json:"expiring_soon" example:"false"`
}

// swagger:model MemberResponse
type MemberResponse struct {
	Member  MemberDetails `json:"member"`
	Message string        `json:"message" example:"Member retrieved successfully"`
}

// swagger:model ListMembersResponse
type ListMembersResponse struct {
	Members []MemberDetails `json:"members"`
	Total   int             `json:"total" example:"42"`
	Message string          `json:"message" example:"Members retrieved successfully"`
}

// swagger:model PlansResponse
type PlansResponse struct {
	// Plan name to duration in months
	Plans   map[string]int `json:"plans" example:"Bronze:3,Silver:6"`
	Message string         `json:"message" example:"Plans retrieved successfully"`
}

// swagger:model SavePlansRequest
type SavePlansRequest struct {
	// Replacement catalog: plan name to duration in months
	Plans map[string]int `json:"plans"`
}

// swagger:model DashboardMetricsResponse
type DashboardMetricsResponse struct {
	Metrics Metrics `json:"metrics"`
	Message string  `json:"message" example:"Metrics computed successfully"`
}

// swagger:model PlanDistributionResponse
type PlanDistributionResponse struct {
	Distribution []PlanCount `json:"distribution"`
	Message      string      `json:"message" example:"Plan distribution computed successfully"`
}

// swagger:model MonthlyRenewalsResponse
type MonthlyRenewalsResponse struct {
	Renewals []MonthCount `json:"renewals"`
	Message  string       `json:"message" example:"Monthly renewals computed successfully"`
}

// swagger:model RetentionTrendResponse
type RetentionTrendResponse struct {
	Trend   []RetentionPoint `json:"trend"`
	Message string           `json:"message" example:"Retention trend computed successfully"`
}

// swagger:model PaginationDetails
type PaginationDetails struct {
	// Current page number
	Page int `json:"page"`
	// Page size
	PageSize int `json:"page_size"`
	// Total number of items
	Total int64 `json:"total"`
	// Total number of pages
	TotalPages int `json:"total_pages"`
}

// swagger:model EventLogDetails
type EventLogDetails struct {
	EID         string `json:"eid" example:"9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"`
	Category    string `json:"category" example:"MEMBER"`
	Action      string `json:"action" example:"CREATED"`
	MemberID    string `json:"member_id,omitempty" example:"M0007"`
	Description string `json:"description,omitempty" example:"Member Jane Doe created"`
	CreatedAt   string `json:"created_at" example:"2026-01-15T12:00:00Z"`
}

// swagger:model EventLogsResponse
type EventLogsResponse struct {
	Events     []EventLogDetails `json:"events"`
	Pagination PaginationDetails `json:"pagination"`
	Message    string            `json:"message" example:"Event logs retrieved successfully"`
}
