package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"attendsync/internal/attendance"
	"attendsync/internal/auth"
	"attendsync/internal/campus"
	"attendsync/internal/httpmiddleware"
	"attendsync/internal/identity"
	"attendsync/internal/tally"
)

// Admitter turns a student's claim into a stored record.
type Admitter interface {
	Admit(ctx context.Context, user identity.User, claim attendance.Claim) (attendance.Record, error)
}

// EventPublisher announces admitted records.
type EventPublisher interface {
	Publish(ctx context.Context, rec attendance.Record) error
}

// HealthCheck reports whether one dependency answers.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) bool
}

// Deps are the services the router serves.
type Deps struct {
	Identity  *identity.Service
	Campus    *campus.Service
	Windows   *attendance.Registry
	Admission Admitter
	Reports   *attendance.Reports
	Events    EventPublisher
	Tallies   tally.Counter

	Health  []HealthCheck
	Metrics http.Handler

	Logger      *slog.Logger
	Limiter     *httpmiddleware.TokenBucket
	CORSOrigins []string
	Production  bool
}

type server struct {
	Deps
	fail auth.ErrorWriter
}

// NewRouter wires middleware and routes over d.
func NewRouter(d Deps) *gin.Engine {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	setupValidator()
	s := &server{Deps: d, fail: errorWriter(d.Logger)}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(d.Logger, "/healthz", "/metrics"))
	r.Use(httpmiddleware.CORS(d.CORSOrigins))
	r.Use(httpmiddleware.SecurityHeaders(d.Production))

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics))
	}
	r.GET("/healthz", s.healthz)

	var limit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		limit = d.Limiter.Middleware(clientKey)
	}
	authn := auth.Bearer(d.Identity, s.fail)

	api := r.Group("/api")
	api.GET("/", s.banner)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", limit, s.register)
	authGroup.POST("/login", limit, s.login)
	authGroup.GET("/me", authn, limit, s.me)

	admin := api.Group("/admin", authn, limit, auth.RequireRole(identity.RoleFaculty, s.fail))
	admin.GET("/batches", s.listBatches)
	admin.POST("/batches", s.createBatch)
	admin.GET("/halls", s.listHalls)
	admin.POST("/halls", s.createHall)
	admin.GET("/students", s.listStudents)
	admin.GET("/attendance/today", s.todayAttendance)
	admin.POST("/attendance-window", s.createWindow)
	admin.GET("/attendance-windows/:id/tally", s.windowTally)

	// Student role checks live in the registry and engine, which refuse other
	// roles before touching storage.
	student := api.Group("/student", authn, limit)
	student.GET("/attendance-windows", s.activeWindows)
	student.POST("/mark-attendance", s.markAttendance)

	return r
}

// clientKey rate limits authenticated callers by user id and everyone else
// by address.
func clientKey(c *gin.Context) string {
	if user, ok := auth.UserFrom(c); ok {
		return "user:" + user.ID
	}
	return "ip:" + c.ClientIP()
}

func (s *server) banner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "IIITDM AttendanceSync API v2.0"})
}

func (s *server) healthz(c *gin.Context) {
	status := http.StatusOK
	body := gin.H{}
	for _, h := range s.Health {
		ok := h.Check(c.Request.Context())
		body[h.Name] = ok
		if !ok {
			status = http.StatusServiceUnavailable
		}
	}
	if status == http.StatusOK {
		body["status"] = "ok"
	} else {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}
