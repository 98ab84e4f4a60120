// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"membertrack-server/commons"
	"membertrack-server/handlers"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")
	api_v1.GET("/members", handlers.ListMembersHandler)
	api_v1.POST("/members", handlers.CreateMemberHandler)
	api_v1.GET("/members/export", handlers.ExportMembersHandler)
	api_v1.GET("/members/:member_id", handlers.GetMemberHandler)
	api_v1.PUT("/members/:member_id", handlers.UpdateMemberHandler)
	api_v1.DELETE("/members/:member_id", handlers.DeleteMemberHandler)
	api_v1.POST("/members/:member_id/renew", handlers.RenewMemberHandler)
	api_v1.GET("/plans", handlers.GetPlansHandler)
	api_v1.PUT("/plans", handlers.SavePlansHandler)
	api_v1.GET("/dashboard/metrics", handlers.GetDashboardMetricsHandler)
	api_v1.GET("/dashboard/plan-distribution", handlers.GetPlanDistributionHandler)
	api_v1.GET("/dashboard/monthly-renewals", handlers.GetMonthlyRenewalsHandler)
	api_v1.GET("/dashboard/retention-trend", handlers.GetRetentionTrendHandler)
	api_v1.GET("/event-logs", handlers.GetEventLogsHandler)
	commons.Logger.Info("v1 routes registered successfully")
}
