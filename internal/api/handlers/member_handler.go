package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Marga-Ghale/ora-member-service/internal/api/middleware"
	"github.com/Marga-Ghale/ora-member-service/internal/logger"
	"github.com/Marga-Ghale/ora-member-service/internal/models"
	"github.com/Marga-Ghale/ora-member-service/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	msgMemberCreated = "Member created and external system notified"
	msgMemberDeleted = "Record deleted successfully"
	msgNotFound      = "Record not found"
)

type MemberHandler struct {
	memberService service.MemberService
}

func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Create stores a new member. The response does not depend on whether the
// external notification succeeds.
func (h *MemberHandler) Create(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: err.Error()})
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.CreateMemberResponse{
		Message: msgMemberCreated,
		Member:  member,
	})
}

// List returns every member, or an empty array.
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if members == nil {
		members = []*models.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// Update applies a partial update and returns the stored member.
func (h *MemberHandler) Update(c *gin.Context) {
	var req models.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: err.Error()})
		return
	}

	member, err := h.memberService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: msgMemberDeleted})
}

func (h *MemberHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.MessageResponse{Message: msgNotFound})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.MessageResponse{Message: err.Error()})
	default:
		log := logger.Component("members")
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("member request failed")
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.MessageResponse{Message: err.Error()})
	}
}
