package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendsync/internal/apperr"
	"attendsync/internal/auth"
	"attendsync/internal/identity"
)

type registerRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"notblank"`
	FullName   string `json:"full_name" binding:"notblank"`
	Role       string `json:"role" binding:"role"`
	Batch      string `json:"batch"`
	Department string `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (s *server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError(err))
		return
	}
	sess, err := s.Identity.Register(c.Request.Context(), identity.Registration{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       identity.Role(req.Role),
		Batch:      req.Batch,
		Department: req.Department,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.Logger.Info("user registered", "user_id", sess.User.ID, "role", sess.User.Role)
	c.JSON(http.StatusOK, sess)
}

func (s *server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, bindError(err))
		return
	}
	sess, err := s.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (s *server) me(c *gin.Context) {
	user, ok := auth.UserFrom(c)
	if !ok {
		s.fail(c, apperr.New(apperr.Unauthenticated, "missing bearer token"))
		return
	}
	c.JSON(http.StatusOK, user.View())
}
