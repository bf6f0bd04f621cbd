package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mindhaven/models"
	"mindhaven/services/appointment"
	"mindhaven/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the appointment service over HTTP.
type AppointmentHandler struct {
	Service appointment.AppointmentService
	Logger  *zap.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc appointment.AppointmentService, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Logger: logger}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Every taxonomy error is a 4xx; anything else is a 500.
func (h *AppointmentHandler) respondServiceError(c *gin.Context, err error) {
	var (
		notFound   *appointment.NotFoundError
		conflict   *appointment.SlotConflictError
		transition *appointment.InvalidTransitionError
		terminal   *appointment.AlreadyTerminalError
		rejected   *appointment.ValidationRejectedError
		badPayload *appointment.ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, notFound.Error(), "")
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, "Slot conflict", conflict.Error())
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusBadRequest, "Invalid status transition", transition.Error())
	case errors.As(err, &terminal):
		utils.JSONError(c, http.StatusBadRequest, terminal.Error(), "")
	case errors.As(err, &rejected):
		utils.JSONError(c, http.StatusBadRequest, rejected.Error(), "")
	case errors.As(err, &badPayload):
		utils.JSONError(c, http.StatusBadRequest, badPayload.Error(), "")
	default:
		h.Logger.Error("appointment service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// GetCounselors returns the public directory of approved counselors.
// GET /api/appointments/counselors?specialization=&minExperience=
func (h *AppointmentHandler) GetCounselors(c *gin.Context) {
	filter := models.CounselorFilter{
		Specialization: c.Query("specialization"),
	}
	if raw := c.Query("minExperience"); raw != "" {
		minExp, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "minExperience must be a number", "")
			return
		}
		filter.MinExperience = minExp
	}

	counselors, err := h.Service.ListCounselors(filter)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(counselors), "data": counselors})
}

// GetAvailability resolves a counselor's slots for a date.
// GET /api/appointments/availability/:counselorId?date=YYYY-MM-DD
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Date is required", "")
		return
	}

	slots, err := h.Service.Resolve(c.Param("counselorId"), date)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "slots": slots})
}

// Book creates a new appointment for the authenticated client.
// POST /api/appointments/book
func (h *AppointmentHandler) Book(c *gin.Context) {
	var req models.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.Book(c.GetString("userID"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Appointment booked", "data": appt})
}

// MyBookings lists the authenticated client's appointments.
// GET /api/appointments/my-bookings?status=
func (h *AppointmentHandler) MyBookings(c *gin.Context) {
	appts, err := h.Service.ListByClient(c.GetString("userID"), c.Query("status"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(appts), "data": appts})
}

// Pay runs the simulated charge for an appointment.
// POST /api/appointments/pay/:id
func (h *AppointmentHandler) Pay(c *gin.Context) {
	appt, err := h.Service.Pay(c.Param("id"), c.GetString("userID"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment successful", "data": appt})
}

// BillingPaid lists paid appointments where the caller is either party.
// GET /api/appointments/billing/paid
func (h *AppointmentHandler) BillingPaid(c *gin.Context) {
	h.billing(c, models.PaymentPaid)
}

// BillingUnpaid lists unpaid appointments where the caller is either party.
// GET /api/appointments/billing/unpaid
func (h *AppointmentHandler) BillingUnpaid(c *gin.Context) {
	h.billing(c, models.PaymentUnpaid)
}

func (h *AppointmentHandler) billing(c *gin.Context, paymentStatus string) {
	appts, err := h.Service.ListBilling(c.GetString("userID"), paymentStatus)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(appts), "data": appts})
}

// Cancel sets the client's appointment to cancelled.
// PATCH /api/appointments/cancel/:id
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	appt, err := h.Service.Cancel(c.Param("id"), c.GetString("userID"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment cancelled", "data": appt})
}

// Schedule lists all of the authenticated counselor's appointments.
// GET /api/appointments/schedule
func (h *AppointmentHandler) Schedule(c *gin.Context) {
	appts, err := h.Service.ListByCounselor(c.GetString("counselorID"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": appts})
}

// UpdateStatus applies a counselor's status/notes/meetingLink update.
// PUT /api/appointments/status/:id
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.UpdateStatus(c.Param("id"), c.GetString("counselorID"), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Appointment updated", "data": appt})
}

// Complete marks a scheduled appointment completed.
// PATCH /api/appointments/complete/:id
func (h *AppointmentHandler) Complete(c *gin.Context) {
	var req models.CompleteAppointmentRequest
	// Body is optional; ignore bind errors for an empty body.
	_ = c.ShouldBindJSON(&req)

	appt, err := h.Service.Complete(c.Param("id"), c.GetString("counselorID"), req.SessionNotes)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session completed", "data": appt})
}

// SetSlots replaces the counselor's declared availability (guarded).
// POST /api/appointments/set-slots
func (h *AppointmentHandler) SetSlots(c *gin.Context) {
	var req models.SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	avail, err := h.Service.SetAvailability(c.Request.Context(), c.GetString("counselorID"), req.AvailabilityArray)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Availability updated successfully", "data": avail})
}

// DeleteDayAvailability clears one date's entry (guarded, same as set-slots).
// DELETE /api/appointments/availability/:date
func (h *AppointmentHandler) DeleteDayAvailability(c *gin.Context) {
	date := c.Param("date")
	avail, err := h.Service.ClearDate(c.Request.Context(), c.GetString("counselorID"), date)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Availability for " + date + " cleared successfully",
		"data":    avail,
	})
}

// DashboardStats returns the counselor dashboard KPIs and activity series.
// GET /api/appointments/counselor/dashboard-stats
func (h *AppointmentHandler) DashboardStats(c *gin.Context) {
	stats, chart, err := h.Service.DashboardStats(c.GetString("counselorID"))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats, "chartData": chart})
}

// AdminAll lists every appointment, newest first.
// GET /api/appointments/admin/all
func (h *AppointmentHandler) AdminAll(c *gin.Context) {
	appts, err := h.Service.ListAll()
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(appts), "data": appts})
}
