package controllers

import (
	"DoctorPortal/handlers"
	"DoctorPortal/middlewares"
	"DoctorPortal/services"

	"github.com/gin-gonic/gin"
)

// SetupPortalRoutes registers the portal API. Everything except login sits
// behind the session gate.
func SetupPortalRoutes(
	router *gin.Engine,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	dashboardHandler *handlers.DashboardHandler,
	appointmentHandler *handlers.AppointmentHandler,
	orderHandler *handlers.OrderHandler,
	medicineHandler *handlers.MedicineHandler,
	shiftHandler *handlers.ShiftHandler,
) {
	portal := router.Group("/portal/v1")

	portal.POST("/login", authHandler.Login)

	authed := portal.Group("")
	authed.Use(middlewares.SessionAuthMiddleware(authService))

	authed.POST("/logout", authHandler.Logout)
	authed.GET("/session", authHandler.Session)

	authed.GET("/dashboard", dashboardHandler.Overview)

	authed.GET("/appointments", appointmentHandler.List)
	authed.POST("/patients/details", appointmentHandler.PatientDetails)

	authed.GET("/orders", orderHandler.Pending)
	authed.GET("/orders/history", orderHandler.History)
	authed.POST("/orders/:order_id/items", orderHandler.AddItem)
	authed.DELETE("/orders/:order_id/items/:item_id", orderHandler.RemoveItem)
	authed.PATCH("/orders/:order_id/items/:item_id/quantity", orderHandler.SetQuantity)
	authed.PATCH("/orders/:order_id/items/:item_id/medicine", orderHandler.SelectMedicine)
	authed.POST("/orders/:order_id/save", orderHandler.Save)
	authed.POST("/orders/:order_id/confirm", orderHandler.Confirm)
	authed.POST("/orders/:order_id/reject", orderHandler.Reject)

	authed.GET("/medicines", medicineHandler.Options)

	authed.GET("/shifts", shiftHandler.List)
	authed.POST("/shifts", shiftHandler.Create)
	authed.DELETE("/shifts/:shift_id", shiftHandler.Delete)
}
