package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the role-specific landing routes. The heavy
// lifting (profiles, payroll, leave, attendance) happens through the
// mirrored resource routes; these endpoints confirm identity and hand the
// client its navigation entry points.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Username string            `json:"username"`
	Role     string            `json:"role"`
	Links    map[string]string `json:"_links"`
}

// Admin handles GET /admin-dashboard.
func (h *DashboardHandler) Admin(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Username: sess.User.Username,
		Role:     string(sess.Role),
		Links: map[string]string{
			"departments":       "/api/admin/departments/",
			"employee_profiles": "/api/admin/employee-profiles/",
			"payroll":           "/api/admin/payroll/",
			"leave_requests":    "/api/admin/leave-requests/",
			"attendance":        "/api/admin/attendance/",
			"self_assessments":  "/api/admin/self-assessments/",
			"meeting_slots":     "/api/admin/meeting-slots/",
			"pending_users":     "/api/admin/users/pending-approval/",
		},
	})
}

// Employee handles GET /employee-dashboard.
func (h *DashboardHandler) Employee(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Username: sess.User.Username,
		Role:     string(sess.Role),
		Links: map[string]string{
			"leave_requests":   "/api/employee/leave-requests/",
			"payslips":         "/api/employee/payslips/",
			"attendance":       "/api/attendance/",
			"self_assessments": "/api/employee/self-assessments/",
			"meeting_slots":    "/api/employee/meeting-slots/",
			"my_booked_slots":  "/api/employee/my-booked-slots/",
		},
	})
}

// Login handles GET /login. An already-authenticated user is sent straight
// to their dashboard, mirroring the redirect-from-login behaviour of the
// original portal.
func (h *DashboardHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if sess.IsAuthenticated {
		return c.Redirect(http.StatusSeeOther, sess.Role.HomePath())
	}
	return c.JSON(http.StatusOK, map[string]string{"detail": "login required"})
}

// Home handles GET /: route by auth state.
func (h *DashboardHandler) Home(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if sess.IsAuthenticated {
		return c.Redirect(http.StatusSeeOther, sess.Role.HomePath())
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}
