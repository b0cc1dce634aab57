package handlers

import (
	"context"
	"hams-server/internal/ledger"
	"hams-server/internal/models"
	"hams-server/internal/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Ledger  *ledger.Ledger
	Latency time.Duration
}

// NewAppointmentHandler creates a new AppointmentHandler. Bookings wait for
// latency before they reach the ledger.
func NewAppointmentHandler(l *ledger.Ledger, latency time.Duration) *AppointmentHandler {
	return &AppointmentHandler{Ledger: l, Latency: latency}
}

// CreateAppointmentRequest represents the request body for creating an appointment.
// Required fields are checked by the ledger so the failure carries its kind.
type CreateAppointmentRequest struct {
	PatientID    string     `json:"patientId"`
	DoctorID     string     `json:"doctorId"`
	DepartmentID string     `json:"departmentId"`
	StartTime    time.Time  `json:"startTime"`
	EndTime      *time.Time `json:"endTime"`
	Reason       string     `json:"reason" binding:"max=255"`
}

// CreateAppointment books a slot for the authenticated actor.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	booking := ledger.BookingRequest{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		DepartmentID: req.DepartmentID,
		StartTime:    req.StartTime,
		Reason:       req.Reason,
	}
	if req.EndTime != nil {
		booking.EndTime = *req.EndTime
	}

	ctx := c.Request.Context()
	result := utils.Async(h.Latency, func() (models.Appointment, error) {
		// A client that gave up during the delay gets no booking.
		if err := ctx.Err(); err != nil {
			return models.Appointment{}, err
		}
		return h.Ledger.Book(context.WithoutCancel(ctx), actor, booking)
	})

	appointment, err := utils.Await(ctx, result)
	if err != nil {
		if ctx.Err() != nil {
			utils.Error(c, http.StatusServiceUnavailable, "Request cancelled")
			return
		}
		respondError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments lists the actor's appointments, narrowed by the optional
// search and status query parameters.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appointments, err := h.Ledger.List(c.Request.Context(), actor, ledger.Filter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID handles fetching a single appointment the actor takes part in.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appointment, err := h.Ledger.Get(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CancelAppointment marks an appointment as cancelled.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	appointment, err := h.Ledger.Cancel(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", appointment)
}
