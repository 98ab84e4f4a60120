// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"membertrack-server/membership"
	"membertrack-server/models"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

// ListMembersHandler godoc
// @Summary      List members
// @Description  Lists members sorted by end date, with free-text search and status/plan filters. Every row carries a recomputed status and an expiring-soon flag.
// @Tags         members
// @Produce      json
// @Param        search query string false "Substring match over name, email and phone"
// @Param        status query []string false "Status filter (repeatable)"
// @Param        plan   query []string false "Plan filter (repeatable)"
// @Success      200 {object} ListMembersResponse "Members retrieved successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members [get]
func ListMembersHandler(c echo.Context) error {
	logger := c.Logger()

	members, err := store.Conn.LoadMembers()
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	filter := memberFilter{
		Search:   c.QueryParam("search"),
		Statuses: c.QueryParams()["status"],
		Plans:    c.QueryParams()["plan"],
	}
	filtered := filter.apply(members)

	today := time.Now()
	details := make([]MemberDetails, 0, len(filtered))
	for _, m := range filtered {
		details = append(details, memberDetails(m, today))
	}

	return c.JSON(http.StatusOK, ListMembersResponse{
		Members: details,
		Total:   len(details),
		Message: "Members retrieved successfully",
	})
}

// GetMemberHandler godoc
// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Param        member_id path string true "Member ID"
// @Success      200 {object} MemberResponse "Member retrieved successfully"
// @Failure      404 {object} echo.HTTPError "Member not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members/{member_id} [get]
func GetMemberHandler(c echo.Context) error {
	logger := c.Logger()

	member, err := store.Conn.GetMember(c.Param("member_id"))
	if errors.Is(err, store.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Member not found",
		}
	}
	if err != nil {
		logger.Error("Failed to load member:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, MemberResponse{
		Member:  memberDetails(*member, time.Now()),
		Message: "Member retrieved successfully",
	})
}

// CreateMemberHandler godoc
// @Summary      Add a member
// @Description  Registers a new member. A blank member ID is auto-generated from the highest existing numeric suffix; a blank end date is computed from the start date and the plan's duration.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body CreateMemberRequest true "Member to add"
// @Success      201 {object} MemberResponse "Member added successfully"
// @Failure      400 {object} echo.HTTPError "Invalid payload"
// @Failure      409 {object} echo.HTTPError "Duplicate member ID or email"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members [post]
func CreateMemberHandler(c echo.Context) error {
	logger := c.Logger()

	var req CreateMemberRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create member request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if strings.TrimSpace(req.Name) == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "name field is required",
		}
	}

	today := time.Now()
	start := today
	if strings.TrimSpace(req.StartDate) != "" {
		parsed, ok := membership.ParseDate(req.StartDate)
		if !ok {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("start_date must be a valid %s date", membership.DateFormat),
			}
		}
		start = parsed
	}

	members, err := store.Conn.LoadMembers()
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	memberID := strings.TrimSpace(req.MemberID)
	if memberID == "" {
		memberID = membership.GenerateMemberID(memberIDs(members))
	}
	for _, m := range members {
		if m.MemberID == memberID {
			return &echo.HTTPError{
				Code:    http.StatusConflict,
				Message: "Member ID already exists. Pick another or leave blank to auto-generate.",
			}
		}
	}
	if emailTaken(members, req.Email, "") {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Email already exists in the system",
		}
	}

	var end time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		parsed, ok := membership.ParseDate(req.EndDate)
		if !ok {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("end_date must be a valid %s date", membership.DateFormat),
			}
		}
		end = parsed
	} else {
		catalog, err := store.Conn.LoadPlans()
		if err != nil {
			logger.Error("Failed to load plans:", err)
			return echo.ErrInternalServerError
		}
		end = membership.PlanEndDate(start, req.PlanType, catalog)
	}

	member := models.Member{
		MemberID:  memberID,
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		StartDate: &start,
		EndDate:   &end,
		PlanType:  req.PlanType,
		Notes:     strings.TrimSpace(req.Notes),
	}
	member.RefreshStatus(today)

	if err := store.Conn.CreateMember(member); err != nil {
		logger.Error("Failed to create member:", err)
		return echo.ErrInternalServerError
	}

	logMemberEvent(c, models.Created, member.MemberID, fmt.Sprintf("Member %s created", member.Name))
	logger.Infof("Member %s created successfully.", member.MemberID)
	return c.JSON(http.StatusCreated, MemberResponse{
		Member:  memberDetails(member, today),
		Message: "Member added successfully",
	})
}

// UpdateMemberHandler godoc
// @Summary      Edit or renew a member
// @Description  Updates contact details, plan, end date and notes. The start date is immutable and never touched. An optional renew_months (1-60) extends the end date after the edits, falling back to today when no end date exists.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        member_id path string true "Member ID"
// @Param        request body UpdateMemberRequest true "Fields to update"
// @Success      200 {object} MemberResponse "Member updated successfully"
// @Failure      400 {object} echo.HTTPError "Invalid payload"
// @Failure      404 {object} echo.HTTPError "Member not found"
// @Failure      409 {object} echo.HTTPError "Duplicate email"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members/{member_id} [put]
func UpdateMemberHandler(c echo.Context) error {
	logger := c.Logger()
	memberID := c.Param("member_id")

	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update member request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.RenewMonths != nil && (*req.RenewMonths < 1 || *req.RenewMonths > 60) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "renew_months must be between 1 and 60",
		}
	}

	member, err := store.Conn.GetMember(memberID)
	if errors.Is(err, store.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Member not found",
		}
	}
	if err != nil {
		logger.Error("Failed to load member:", err)
		return echo.ErrInternalServerError
	}

	members, err := store.Conn.LoadMembers()
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}
	if emailTaken(members, req.Email, memberID) {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "Email already exists in the system",
		}
	}

	member.Name = strings.TrimSpace(req.Name)
	member.Email = strings.TrimSpace(req.Email)
	member.Phone = strings.TrimSpace(req.Phone)
	member.PlanType = req.PlanType
	member.Notes = strings.TrimSpace(req.Notes)

	if strings.TrimSpace(req.EndDate) != "" {
		parsed, ok := membership.ParseDate(req.EndDate)
		if !ok {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("end_date must be a valid %s date", membership.DateFormat),
			}
		}
		member.EndDate = &parsed
	}

	today := time.Now()
	action := models.Updated
	if req.RenewMonths != nil {
		base := today
		if member.EndDate != nil {
			base = *member.EndDate
		}
		renewed := membership.RenewByMonths(base, *req.RenewMonths)
		member.EndDate = &renewed
		action = models.Renewed
	}
	member.RefreshStatus(today)

	if err := store.Conn.UpdateMember(*member); err != nil {
		logger.Error("Failed to update member:", err)
		return echo.ErrInternalServerError
	}

	logMemberEvent(c, action, member.MemberID, fmt.Sprintf("Member %s updated", member.Name))
	logger.Infof("Member %s updated successfully.", member.MemberID)
	return c.JSON(http.StatusOK, MemberResponse{
		Member:  memberDetails(*member, today),
		Message: "Member updated successfully",
	})
}

// RenewMemberHandler godoc
// @Summary      Quick renew
// @Description  Extends a member's end date by N months (1-60) from its current value, or from today when the member has no end date. The day of month clamps to 28 like every other end-date computation.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        member_id path string true "Member ID"
// @Param        request body RenewMemberRequest true "Months to extend by"
// @Success      200 {object} MemberResponse "Member renewed successfully"
// @Failure      400 {object} echo.HTTPError "Invalid month count"
// @Failure      404 {object} echo.HTTPError "Member not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members/{member_id}/renew [post]
func RenewMemberHandler(c echo.Context) error {
	logger := c.Logger()
	memberID := c.Param("member_id")

	var req RenewMemberRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid renew member request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}
	if req.Months < 1 || req.Months > 60 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "months must be between 1 and 60",
		}
	}

	member, err := store.Conn.GetMember(memberID)
	if errors.Is(err, store.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Member not found",
		}
	}
	if err != nil {
		logger.Error("Failed to load member:", err)
		return echo.ErrInternalServerError
	}

	today := time.Now()
	base := today
	if member.EndDate != nil {
		base = *member.EndDate
	}
	renewed := membership.RenewByMonths(base, req.Months)
	member.EndDate = &renewed
	member.RefreshStatus(today)

	if err := store.Conn.UpdateMember(*member); err != nil {
		logger.Error("Failed to renew member:", err)
		return echo.ErrInternalServerError
	}

	logMemberEvent(c, models.Renewed, member.MemberID,
		fmt.Sprintf("Member %s renewed for %d month(s)", member.Name, req.Months))
	logger.Infof("Member %s renewed for %d month(s).", member.MemberID, req.Months)
	return c.JSON(http.StatusOK, MemberResponse{
		Member:  memberDetails(*member, today),
		Message: "Member renewed successfully",
	})
}

// DeleteMemberHandler godoc
// @Summary      Delete a member
// @Tags         members
// @Produce      json
// @Param        member_id path string true "Member ID"
// @Success      200 {object} map[string]string "Member deleted successfully"
// @Failure      404 {object} echo.HTTPError "Member not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/members/{member_id} [delete]
func DeleteMemberHandler(c echo.Context) error {
	logger := c.Logger()
	memberID := c.Param("member_id")

	err := store.Conn.DeleteMember(memberID)
	if errors.Is(err, store.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Member not found",
		}
	}
	if err != nil {
		logger.Error("Failed to delete member:", err)
		return echo.ErrInternalServerError
	}

	logMemberEvent(c, models.Deleted, memberID, fmt.Sprintf("Member %s deleted", memberID))
	logger.Infof("Member %s deleted successfully.", memberID)
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Member deleted successfully",
	})
}
