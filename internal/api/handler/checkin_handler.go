package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/dto"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/response"
)

// CheckinHandler 签到模块 HTTP 处理器
type CheckinHandler struct {
	checkinSvc service.CheckinService
}

// NewCheckinHandler 创建 CheckinHandler
func NewCheckinHandler(checkinSvc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinSvc: checkinSvc}
}

// ListClients 当前员工被分配的客户
// GET /api/checkin/clients
func (h *CheckinHandler) ListClients(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.checkinSvc.ListClients(c.Request.Context(), userID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, result)
}

// CheckIn 签到
// POST /api/checkin
func (h *CheckinHandler) CheckIn(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "client_id is required")
		return
	}

	result, err := h.checkinSvc.CheckIn(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.Created(c, "Checked in successfully", result)
}

// CheckOut 签退
// PUT /api/checkin/checkout
func (h *CheckinHandler) CheckOut(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.checkinSvc.CheckOut(c.Request.Context(), userID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OKMessage(c, "Checked out successfully", result)
}

// Active 进行中的签到，没有时 data 为 null
// GET /api/checkin/active
func (h *CheckinHandler) Active(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.checkinSvc.Active(c.Request.Context(), userID)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	// 类型化 nil 指针编码为 "data": null
	response.OK(c, result)
}

// History 签到历史
// GET /api/checkin/history?start_date=&end_date=
func (h *CheckinHandler) History(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CheckinHistoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	result, err := h.checkinSvc.History(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleCheckinError(c, err)
		return
	}
	response.OK(c, result)
}

func (h *CheckinHandler) handleCheckinError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, 10001, ve.Message)
	case errors.Is(err, service.ErrClientNotAssigned):
		response.BadRequest(c, 12001, "Client is not assigned to you")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		response.BadRequest(c, 12002, "You already have an active check-in. Please checkout first.")
	case errors.Is(err, service.ErrNoActiveCheckin):
		response.NotFound(c, 12003, "No active check-in found")
	default:
		response.InternalError(c, "")
	}
}
