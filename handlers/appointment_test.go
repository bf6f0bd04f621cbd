package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mindhaven/models"
	"mindhaven/services/appointment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubService returns canned results per method.
type stubService struct {
	counselors []models.Counselor
	slots      []models.ResolvedSlot
	appt       *models.Appointment
	appts      []models.Appointment
	avail      models.Availability
	stats      *models.CounselorStats
	chart      []models.DailyActivity
	err        error

	bookedBy   string
	bookedReq  models.BookAppointmentRequest
	clearedKey string
}

func (s *stubService) ListCounselors(models.CounselorFilter) ([]models.Counselor, error) {
	return s.counselors, s.err
}

func (s *stubService) Resolve(counselorID, date string) ([]models.ResolvedSlot, error) {
	return s.slots, s.err
}

func (s *stubService) Book(clientID string, req models.BookAppointmentRequest) (*models.Appointment, error) {
	s.bookedBy, s.bookedReq = clientID, req
	return s.appt, s.err
}

func (s *stubService) Cancel(id, clientID string) (*models.Appointment, error) {
	return s.appt, s.err
}

func (s *stubService) Pay(id, clientID string) (*models.Appointment, error) {
	return s.appt, s.err
}

func (s *stubService) UpdateStatus(id, counselorID string, req models.UpdateStatusRequest) (*models.Appointment, error) {
	return s.appt, s.err
}

func (s *stubService) Complete(id, counselorID, sessionNotes string) (*models.Appointment, error) {
	return s.appt, s.err
}

func (s *stubService) ListByClient(clientID, status string) ([]models.Appointment, error) {
	return s.appts, s.err
}

func (s *stubService) ListByCounselor(counselorID string) ([]models.Appointment, error) {
	return s.appts, s.err
}

func (s *stubService) ListBilling(partyID, paymentStatus string) ([]models.Appointment, error) {
	return s.appts, s.err
}

func (s *stubService) ListAll() ([]models.Appointment, error) {
	return s.appts, s.err
}

func (s *stubService) SetAvailability(_ context.Context, counselorID string, proposed models.Availability) (models.Availability, error) {
	return s.avail, s.err
}

func (s *stubService) ClearDate(_ context.Context, counselorID, date string) (models.Availability, error) {
	s.clearedKey = date
	return s.avail, s.err
}

func (s *stubService) DashboardStats(counselorID string) (*models.CounselorStats, []models.DailyActivity, error) {
	return s.stats, s.chart, s.err
}

var _ appointment.AppointmentService = (*stubService)(nil)

func newTestRouter(svc appointment.AppointmentService, identity gin.HandlerFunc) (*gin.Engine, *AppointmentHandler) {
	gin.SetMode(gin.TestMode)
	h := NewAppointmentHandler(svc, zap.NewNop())
	r := gin.New()
	if identity != nil {
		r.Use(identity)
	}
	return r, h
}

func asClient(id string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("userID", id) }
}

func asCounselor(id string) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("counselorID", id) }
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGetAvailability(t *testing.T) {
	t.Run("returns resolved slots", func(t *testing.T) {
		svc := &stubService{slots: []models.ResolvedSlot{
			{Time: "10:00 AM", IsBooked: true},
			{Time: "11:00 AM", IsBooked: false},
		}}
		r, h := newTestRouter(svc, nil)
		r.GET("/availability/:counselorId", h.GetAvailability)

		w := doJSON(r, http.MethodGet, "/availability/c1?date=2026-09-15", "")
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		require.Equal(t, true, body["success"])
		require.Len(t, body["slots"], 2)
	})

	t.Run("missing date is a 400", func(t *testing.T) {
		r, h := newTestRouter(&stubService{}, nil)
		r.GET("/availability/:counselorId", h.GetAvailability)

		w := doJSON(r, http.MethodGet, "/availability/c1", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Date is required", decode(t, w)["message"])
	})

	t.Run("unknown counselor is a 404", func(t *testing.T) {
		svc := &stubService{err: &appointment.NotFoundError{Resource: "counselor"}}
		r, h := newTestRouter(svc, nil)
		r.GET("/availability/:counselorId", h.GetAvailability)

		w := doJSON(r, http.MethodGet, "/availability/nope?date=2026-09-15", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookHandler(t *testing.T) {
	t.Run("books for the authenticated client", func(t *testing.T) {
		svc := &stubService{appt: &models.Appointment{ID: "a1", Status: models.StatusScheduled}}
		r, h := newTestRouter(svc, asClient("client1"))
		r.POST("/book", h.Book)

		w := doJSON(r, http.MethodPost, "/book",
			`{"counselorId":"c1","date":"2026-09-15","timeSlot":"10:00 AM","issue":"anxiety"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, "client1", svc.bookedBy)
		require.Equal(t, "c1", svc.bookedReq.CounselorID)
		require.Equal(t, "10:00 AM", svc.bookedReq.TimeSlot)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		r, h := newTestRouter(&stubService{}, asClient("client1"))
		r.POST("/book", h.Book)

		w := doJSON(r, http.MethodPost, "/book", `{"counselorId":`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("slot conflict is a 409", func(t *testing.T) {
		svc := &stubService{err: &appointment.SlotConflictError{Date: "2026-09-15", TimeSlot: "10:00 AM"}}
		r, h := newTestRouter(svc, asClient("client1"))
		r.POST("/book", h.Book)

		w := doJSON(r, http.MethodPost, "/book",
			`{"counselorId":"c1","date":"2026-09-15","timeSlot":"10:00 AM"}`)
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "Slot conflict", decode(t, w)["message"])
	})
}

func TestCancelHandler(t *testing.T) {
	t.Run("cancelling a completed session is a 400", func(t *testing.T) {
		svc := &stubService{err: &appointment.AlreadyTerminalError{Status: models.StatusCompleted}}
		r, h := newTestRouter(svc, asClient("client1"))
		r.PATCH("/cancel/:id", h.Cancel)

		w := doJSON(r, http.MethodPatch, "/cancel/a1", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("someone else's appointment is a 404", func(t *testing.T) {
		svc := &stubService{err: &appointment.NotFoundError{Resource: "appointment"}}
		r, h := newTestRouter(svc, asClient("client2"))
		r.PATCH("/cancel/:id", h.Cancel)

		w := doJSON(r, http.MethodPatch, "/cancel/a1", "")
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStatusHandler(t *testing.T) {
	t.Run("invalid transition is a 400", func(t *testing.T) {
		svc := &stubService{err: &appointment.InvalidTransitionError{
			From: models.StatusCompleted, To: models.StatusScheduled,
		}}
		r, h := newTestRouter(svc, asCounselor("c1"))
		r.PUT("/status/:id", h.UpdateStatus)

		w := doJSON(r, http.MethodPut, "/status/a1", `{"status":"scheduled"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "Invalid status transition", decode(t, w)["message"])
	})
}

func TestSetSlotsHandler(t *testing.T) {
	t.Run("guard rejection surfaces the offending slot", func(t *testing.T) {
		svc := &stubService{err: &appointment.ValidationRejectedError{
			Date: "2026-09-15", TimeSlot: "10:00 AM",
		}}
		r, h := newTestRouter(svc, asCounselor("c1"))
		r.POST("/set-slots", h.SetSlots)

		w := doJSON(r, http.MethodPost, "/set-slots",
			`{"availabilityArray":{"2026-09-15":["2:00 PM"]}}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		msg, _ := decode(t, w)["message"].(string)
		require.Contains(t, msg, "10:00 AM")
		require.Contains(t, msg, "2026-09-15")
	})

	t.Run("successful replace echoes the stored mapping", func(t *testing.T) {
		svc := &stubService{avail: models.Availability{"2026-09-15": {"2:00 PM"}}}
		r, h := newTestRouter(svc, asCounselor("c1"))
		r.POST("/set-slots", h.SetSlots)

		w := doJSON(r, http.MethodPost, "/set-slots",
			`{"availabilityArray":{"2026-09-15":["2:00 PM"]}}`)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		require.Equal(t, "Availability updated successfully", body["message"])
	})
}

func TestDeleteDayAvailabilityHandler(t *testing.T) {
	svc := &stubService{avail: models.Availability{}}
	r, h := newTestRouter(svc, asCounselor("c1"))
	r.DELETE("/availability/:date", h.DeleteDayAvailability)

	w := doJSON(r, http.MethodDelete, "/availability/2026-09-15", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "2026-09-15", svc.clearedKey)
}

func TestGetCounselorsHandler(t *testing.T) {
	t.Run("filters pass through", func(t *testing.T) {
		svc := &stubService{counselors: []models.Counselor{{ID: "c1"}}}
		r, h := newTestRouter(svc, nil)
		r.GET("/counselors", h.GetCounselors)

		w := doJSON(r, http.MethodGet, "/counselors?specialization=anxiety&minExperience=3", "")
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, float64(1), decode(t, w)["count"])
	})

	t.Run("non-numeric minExperience is a 400", func(t *testing.T) {
		r, h := newTestRouter(&stubService{}, nil)
		r.GET("/counselors", h.GetCounselors)

		w := doJSON(r, http.MethodGet, "/counselors?minExperience=lots", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServiceErrorFallback(t *testing.T) {
	svc := &stubService{err: context.DeadlineExceeded}
	r, h := newTestRouter(svc, asClient("client1"))
	r.GET("/my-bookings", h.MyBookings)

	w := doJSON(r, http.MethodGet, "/my-bookings", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
