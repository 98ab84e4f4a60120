// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/csv"
	"net/http"

	"membertrack-server/membership"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

// ExportMembersHandler streams the filtered member view as a CSV
// download, the same columns the flat-file edition stores. Accepts the
// same search/status/plan query parameters as the list endpoint.
func ExportMembersHandler(c echo.Context) error {
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

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="members_filtered.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"MemberID", "Name", "Email", "Phone", "StartDate", "EndDate", "PlanType", "Status", "Notes"}); err != nil {
		return err
	}
	for _, m := range filtered {
		row := []string{
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
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
