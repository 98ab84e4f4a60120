// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"membertrack-server/models"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

// GetPlansHandler godoc
// @Summary      Get the plan catalog
// @Description  Retrieves the full plan catalog as a mapping of plan name to duration in months.
// @Tags         plans
// @Produce      json
// @Success      200 {object} PlansResponse "Plans retrieved successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/plans [get]
func GetPlansHandler(c echo.Context) error {
	logger := c.Logger()

	catalog, err := store.Conn.LoadPlans()
	if err != nil {
		logger.Error("Failed to load plans:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, PlansResponse{
		Plans:   catalog,
		Message: "Plans retrieved successfully",
	})
}

// SavePlansHandler godoc
// @Summary      Replace the plan catalog
// @Description  Replaces the entire plan catalog, matching the settings editor of the original system. Removing a plan does not cascade to members referencing it; their plan name simply displays as unrecognized and falls back to a 12-month duration for end-date computation.
// @Tags         plans
// @Accept       json
// @Produce      json
// @Param        request body SavePlansRequest true "Replacement catalog"
// @Success      200 {object} PlansResponse "Plans saved successfully"
// @Failure      400 {object} echo.HTTPError "Invalid catalog"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/plans [put]
func SavePlansHandler(c echo.Context) error {
	logger := c.Logger()

	var req SavePlansRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid save plans request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if len(req.Plans) == 0 {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "plans field is required and must not be empty",
		}
	}
	for name, months := range req.Plans {
		if strings.TrimSpace(name) == "" {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "plan names must not be blank",
			}
		}
		if months < 1 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: fmt.Sprintf("plan %s must have a positive duration in months", name),
			}
		}
	}

	if err := store.Conn.SavePlans(req.Plans); err != nil {
		logger.Error("Failed to save plans:", err)
		return echo.ErrInternalServerError
	}

	logPlanEvent(c, models.Replaced, fmt.Sprintf("Plan catalog replaced with %d plan(s)", len(req.Plans)))
	logger.Info("Plan catalog saved successfully.")
	return c.JSON(http.StatusOK, PlansResponse{
		Plans:   req.Plans,
		Message: "Plans saved successfully",
	})
}
