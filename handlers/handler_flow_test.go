// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"membertrack-server/membership"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

func setupTestStore(t *testing.T) {
	t.Helper()
	s, err := store.NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCSVStore failed: %v", err)
	}
	store.Conn = s
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestCreateMemberAutoGeneratesIDAndEndDate(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{
		"name": "Jane Doe",
		"email": "jane@example.com",
		"start_date": "2030-01-31",
		"plan_type": "Silver"
	}`)
	c := e.NewContext(req, rec)

	if err := CreateMemberHandler(c); err != nil {
		t.Fatalf("CreateMemberHandler failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp MemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Member.MemberID != "M0001" {
		t.Errorf("Expected first auto ID M0001, got %s", resp.Member.MemberID)
	}
	// Jan 31 + 6 months (seeded Silver) with the day clamped to 28.
	if resp.Member.EndDate != "2030-07-28" {
		t.Errorf("Expected auto end date 2030-07-28, got %s", resp.Member.EndDate)
	}
	if resp.Member.Status != string(membership.StatusActive) {
		t.Errorf("Expected Active, got %s", resp.Member.Status)
	}
}

func TestCreateMemberRejectsDuplicates(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{
		"member_id": "M0001", "name": "Jane Doe", "email": "jane@example.com", "plan_type": "Bronze"
	}`)
	if err := CreateMemberHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("First create failed: %v", err)
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members", `{
		"member_id": "M0001", "name": "Other", "plan_type": "Bronze"
	}`)
	err := CreateMemberHandler(e.NewContext(req, rec))
	if httpStatus(t, err) != http.StatusConflict {
		t.Errorf("Duplicate ID should 409, got %v", err)
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members", `{
		"name": "Other", "email": "JANE@example.com", "plan_type": "Bronze"
	}`)
	err = CreateMemberHandler(e.NewContext(req, rec))
	if httpStatus(t, err) != http.StatusConflict {
		t.Errorf("Duplicate email should 409 case-insensitively, got %v", err)
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members", `{"email": "x@example.com"}`)
	err = CreateMemberHandler(e.NewContext(req, rec))
	if httpStatus(t, err) != http.StatusBadRequest {
		t.Errorf("Missing name should 400, got %v", err)
	}
}

func TestRenewMemberClampsAndGates(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{
		"name": "Jane Doe", "start_date": "2024-08-30", "end_date": "2024-11-30", "plan_type": "Bronze"
	}`)
	if err := CreateMemberHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members/M0001/renew", `{"months": 0}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("M0001")
	if httpStatus(t, RenewMemberHandler(c)) != http.StatusBadRequest {
		t.Error("months=0 should be rejected")
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members/M0001/renew", `{"months": 3}`)
	c = e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("M0001")
	if err := RenewMemberHandler(c); err != nil {
		t.Fatalf("Renew failed: %v", err)
	}
	var resp MemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	// Nov 30 + 3 months clamps to Feb 28.
	if resp.Member.EndDate != "2025-02-28" {
		t.Errorf("Expected 2025-02-28, got %s", resp.Member.EndDate)
	}

	req, rec = jsonRequest(http.MethodPost, "/v1/members/M9999/renew", `{"months": 3}`)
	c = e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("M9999")
	if httpStatus(t, RenewMemberHandler(c)) != http.StatusNotFound {
		t.Error("Renewing a missing member should 404")
	}
}

func TestUpdateMemberKeepsStartDateAndAppliesQuickRenew(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{
		"name": "Jane Doe", "start_date": "2026-01-15", "plan_type": "Bronze"
	}`)
	if err := CreateMemberHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req, rec = jsonRequest(http.MethodPut, "/v1/members/M0001", `{
		"name": "Jane Smith", "plan_type": "Gold", "end_date": "2026-11-30", "renew_months": 3
	}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("M0001")
	if err := UpdateMemberHandler(c); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var resp MemberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Member.Name != "Jane Smith" || resp.Member.PlanType != "Gold" {
		t.Errorf("Edits not applied: %+v", resp.Member)
	}
	if resp.Member.StartDate != "2026-01-15" {
		t.Errorf("Start date must stay immutable, got %s", resp.Member.StartDate)
	}
	// Quick renew runs after the edit: Nov 30 + 3 months, clamped.
	if resp.Member.EndDate != "2027-02-28" {
		t.Errorf("Expected 2027-02-28, got %s", resp.Member.EndDate)
	}
}

func TestDeleteMemberThenList(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{"name": "Jane Doe", "plan_type": "Bronze"}`)
	if err := CreateMemberHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/members/M0001", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("member_id")
	c.SetParamValues("M0001")
	if err := DeleteMemberHandler(c); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/members", nil)
	rec = httptest.NewRecorder()
	if err := ListMembersHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var list ListMembersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if list.Total != 0 {
		t.Errorf("Expected empty list after delete, got %d", list.Total)
	}
}

func TestMutationsAreAudited(t *testing.T) {
	setupTestStore(t)
	e := echo.New()

	req, rec := jsonRequest(http.MethodPost, "/v1/members", `{"name": "Jane Doe", "plan_type": "Bronze"}`)
	if err := CreateMemberHandler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	events, total, err := store.Conn.LoadEvents(1, 10)
	if err != nil {
		t.Fatalf("LoadEvents failed: %v", err)
	}
	if total != 1 || len(events) != 1 {
		t.Fatalf("Expected one audit event, got %d", total)
	}
	if events[0].Action != "CREATED" || events[0].Category != "MEMBER" {
		t.Errorf("Unexpected event: %+v", events[0])
	}
	if events[0].MemberID == nil || *events[0].MemberID != "M0001" {
		t.Errorf("Event should reference M0001, got %v", events[0].MemberID)
	}
	if time.Since(events[0].CreatedAt) > time.Minute {
		t.Errorf("Event timestamp looks stale: %v", events[0].CreatedAt)
	}
}
