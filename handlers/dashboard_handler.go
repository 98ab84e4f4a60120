// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"time"

	"membertrack-server/models"
	"membertrack-server/store"

	"github.com/labstack/echo/v4"
)

func loadFilteredMembers(c echo.Context) ([]models.Member, error) {
	members, err := store.Conn.LoadMembers()
	if err != nil {
		return nil, err
	}
	filter := memberFilter{
		Statuses: c.QueryParams()["status"],
		Plans:    c.QueryParams()["plan"],
	}
	return filter.apply(members), nil
}

// GetDashboardMetricsHandler godoc
// @Summary      Dashboard KPIs
// @Description  Computes totals, status breakdown, retention rate and this-month signup count (with delta against last month) over the member set, optionally narrowed by status and plan filters.
// @Tags         dashboard
// @Produce      json
// @Param        status query []string false "Status filter (repeatable)"
// @Param        plan   query []string false "Plan filter (repeatable)"
// @Success      200 {object} DashboardMetricsResponse "Metrics computed successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/dashboard/metrics [get]
func GetDashboardMetricsHandler(c echo.Context) error {
	logger := c.Logger()

	members, err := loadFilteredMembers(c)
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, DashboardMetricsResponse{
		Metrics: computeMetrics(members, time.Now()),
		Message: "Metrics computed successfully",
	})
}

// GetPlanDistributionHandler godoc
// @Summary      Members per plan
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} PlanDistributionResponse "Plan distribution computed successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/dashboard/plan-distribution [get]
func GetPlanDistributionHandler(c echo.Context) error {
	logger := c.Logger()

	members, err := loadFilteredMembers(c)
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, PlanDistributionResponse{
		Distribution: planDistribution(members),
		Message:      "Plan distribution computed successfully",
	})
}

// GetMonthlyRenewalsHandler godoc
// @Summary      Renewals per month
// @Description  End dates from the last twelve months (and upcoming ones) bucketed by calendar month.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} MonthlyRenewalsResponse "Monthly renewals computed successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/dashboard/monthly-renewals [get]
func GetMonthlyRenewalsHandler(c echo.Context) error {
	logger := c.Logger()

	members, err := loadFilteredMembers(c)
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, MonthlyRenewalsResponse{
		Renewals: monthlyRenewals(members, time.Now()),
		Message:  "Monthly renewals computed successfully",
	})
}

// GetRetentionTrendHandler godoc
// @Summary      Retention and churn trend
// @Description  Twelve monthly samples of retention and churn percentages over the trailing year.
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} RetentionTrendResponse "Retention trend computed successfully"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /v1/dashboard/retention-trend [get]
func GetRetentionTrendHandler(c echo.Context) error {
	logger := c.Logger()

	members, err := loadFilteredMembers(c)
	if err != nil {
		logger.Error("Failed to load members:", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, RetentionTrendResponse{
		Trend:   retentionTrend(members, time.Now()),
		Message: "Retention trend computed successfully",
	})
}
