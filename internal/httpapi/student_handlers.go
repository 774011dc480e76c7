package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendsync/internal/attendance"
	"attendsync/internal/auth"
)

// markRequest is read from a JSON body, or from the query string when the
// request has no body.
type markRequest struct {
	HallID             string   `json:"hall_id" form:"hall_id" binding:"notblank"`
	WindowID           string   `json:"attendance_window_id" form:"attendance_window_id"`
	VerificationMethod string   `json:"verification_method" form:"verification_method"`
	BeaconRSSI         *int     `json:"beacon_rssi" form:"beacon_rssi"`
	FaceConfidence     *float64 `json:"face_confidence" form:"face_confidence"`
}

const publishTimeout = 2 * time.Second

func (s *server) activeWindows(c *gin.Context) {
	user, _ := auth.UserFrom(c)
	windows, err := s.Windows.WindowsForStudent(c.Request.Context(), user)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

func (s *server) markAttendance(c *gin.Context) {
	user, _ := auth.UserFrom(c)

	var req markRequest
	var err error
	if c.Request.ContentLength > 0 {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		s.fail(c, bindError(err))
		return
	}

	rec, err := s.Admission.Admit(c.Request.Context(), user, attendance.Claim{
		HallID:             req.HallID,
		WindowID:           req.WindowID,
		VerificationMethod: req.VerificationMethod,
		BeaconRSSI:         req.BeaconRSSI,
		FaceConfidence:     req.FaceConfidence,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.Logger.Info("attendance marked",
		"record_id", rec.ID, "student_id", rec.StudentID, "window_id", rec.WindowID, "method", rec.VerificationMethod)
	s.publish(c.Request.Context(), rec)

	c.JSON(http.StatusCreated, gin.H{"message": "Attendance marked successfully", "record": rec})
}

// publish announces rec. The record is already committed, so a failure is
// logged and the request still succeeds.
func (s *server) publish(ctx context.Context, rec attendance.Record) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.Events.Publish(ctx, rec); err != nil {
		s.Logger.Warn("event publish failed", "record_id", rec.ID, "error", err)
	}
}
