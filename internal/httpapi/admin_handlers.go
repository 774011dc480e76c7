package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"attendsync/internal/apperr"
	"attendsync/internal/attendance"
	"attendsync/internal/auth"
	"attendsync/internal/campus"
)

type batchRequest struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" binding:"notblank"`
	Code     string   `json:"code" binding:"notblank"`
	Students []string `json:"students"`
}

type hallRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" binding:"notblank"`
	Code        string `json:"code" binding:"notblank"`
	MACAddress  string `json:"mac_address" binding:"required,mac"`
	BeaconMajor *int   `json:"beacon_major" binding:"omitempty,min=0,max=65535"`
	BeaconMinor *int   `json:"beacon_minor" binding:"omitempty,min=0,max=65535"`
	Capacity    int    `json:"capacity" binding:"min=0"`
}

type windowRequest struct {
	HallID    string    `json:"hall_id" binding:"notblank"`
	BatchID   string    `json:"batch_id" binding:"notblank"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	IsActive  *bool     `json:"is_active"`
}

type studentSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Batch    string `json:"batch"`
}

func (s *server) listBatches(c *gin.Context) {
	batches, err := s.Campus.ListBatches(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (s *server) createBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError(err))
		return
	}
	b, err := s.Campus.CreateBatch(c.Request.Context(), campus.Batch{
		ID: req.ID, Name: req.Name, Code: req.Code, Students: req.Students,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (s *server) listHalls(c *gin.Context) {
	halls, err := s.Campus.ListHalls(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, halls)
}

func (s *server) createHall(c *gin.Context) {
	var req hallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError(err))
		return
	}
	h, err := s.Campus.CreateHall(c.Request.Context(), campus.Hall{
		ID:          req.ID,
		Name:        req.Name,
		Code:        req.Code,
		MACAddress:  req.MACAddress,
		BeaconMajor: req.BeaconMajor,
		BeaconMinor: req.BeaconMinor,
		Capacity:    req.Capacity,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h)
}

func (s *server) listStudents(c *gin.Context) {
	users, err := s.Identity.Students(c.Request.Context(), c.Query("batch_id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]studentSummary, 0, len(users))
	for _, u := range users {
		p, _ := u.Student()
		out = append(out, studentSummary{ID: u.ID, Email: u.Email, FullName: u.FullName, Batch: p.Batch})
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) todayAttendance(c *gin.Context) {
	records, err := s.Reports.Today(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *server) createWindow(c *gin.Context) {
	user, _ := auth.UserFrom(c)
	var req windowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError(err))
		return
	}
	w, err := s.Windows.Create(c.Request.Context(), user, attendance.WindowInput{
		HallID:    req.HallID,
		BatchID:   req.BatchID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsActive:  req.IsActive,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.Logger.Info("attendance window created",
		"window_id", w.ID, "hall_id", w.HallID, "batch_id", w.BatchID, "created_by", w.CreatedBy)
	c.JSON(http.StatusCreated, w)
}

func (s *server) windowTally(c *gin.Context) {
	if s.Tallies == nil {
		s.fail(c, apperr.New(apperr.StorageUnavailable, "tallies are not configured"))
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	counts, err := s.Tallies.Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, apperr.Wrap(apperr.StorageUnavailable, "storage unavailable", err))
		return
	}
	c.JSON(http.StatusOK, counts)
}
