// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"membertrack-server/models"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

// logMemberEvent records a member mutation in the event log. A failed
// write is logged and swallowed; the audit trail never fails the
// operation it describes.
func logMemberEvent(c echo.Context, action models.EventAction, memberID, description string) {
	event := models.NewEvent(models.MemberEvent, action, &memberID, &description)
	if err := store.Conn.AppendEvent(event); err != nil {
		c.Logger().Warnf("Failed to record %s event for %s: %v", action, memberID, err)
	}
}

func logPlanEvent(c echo.Context, action models.EventAction, description string) {
	event := models.NewEvent(models.PlanEvent, action, nil, &description)
	if err := store.Conn.AppendEvent(event); err != nil {
		c.Logger().Warnf("Failed to record %s plan event: %v", action, err)
	}
}

// GetEventLogsHandler godoc
// @Summary      List event logs
// @Description  Returns the audit trail of member and plan mutations, newest first, paginated.
// @Tags         event-logs
// @Produce      json
// @Param        page      query int false "Page number (default 1)"
// @Param        page_size query int false "Page size (default 20, max 100)"
// @Success      200 {object} EventLogsResponse "Event logs retrieved successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/event-logs [get]
func GetEventLogsHandler(c echo.Context) error {
	logger := c.Logger()

	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.QueryParam("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	events, total, err := store.Conn.LoadEvents(page, pageSize)
	if err != nil {
		logger.Error("Failed to load event logs:", err)
		return echo.ErrInternalServerError
	}

	details := make([]EventLogDetails, 0, len(events))
	for _, e := range events {
		d := EventLogDetails{
			EID:       e.EID.String(),
			Category:  string(e.Category),
			Action:    string(e.Action),
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
		if e.MemberID != nil {
			d.MemberID = *e.MemberID
		}
		if e.Description != nil {
			d.Description = *e.Description
		}
		details = append(details, d)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return c.JSON(http.StatusOK, EventLogsResponse{
		Events: details,
		Pagination: PaginationDetails{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
		Message: "Event logs retrieved successfully",
	})
}
