package shared

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"alertcast/internal/models"
	"alertcast/internal/services"
	"alertcast/internal/utils"
	"alertcast/pkg/logger"
)

type ReportHandler struct {
	reportService services.ReportService
	logger        *logger.Logger
}

func NewReportHandler(reportService services.ReportService, log *logger.Logger) *ReportHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ReportHandler{
		reportService: reportService,
		logger:        log,
	}
}

// PublicizeReport publishes a report and broadcasts the alert. Delivery
// results stay server side; the caller only learns whether publication
// succeeded.
func (h *ReportHandler) PublicizeReport(c *gin.Context) {
	var request models.PublishRequest
	if !h.bind(c, &request) {
		return
	}

	result, err := h.reportService.PublicizeReport(c.Request.Context(), request.ReportID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if result.AlreadyPublished {
		utils.SuccessResponse(c, fmt.Sprintf("Report %s was already publicized", request.ReportID), nil)
		return
	}

	utils.SuccessResponse(c, fmt.Sprintf("Report %s has been publicized", request.ReportID), nil)
}

// RegisterFCMToken stores the caller's device token.
func (h *ReportHandler) RegisterFCMToken(c *gin.Context) {
	var request models.RegisterTokenRequest
	if !h.bind(c, &request) {
		return
	}

	if err := h.reportService.RegisterPushToken(c.Request.Context(), request.UID, request.Token); err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, fmt.Sprintf("Token registered for user %s", request.UID), nil)
}

// SendStatusNotification pushes a one-off notification to a single device.
func (h *ReportHandler) SendStatusNotification(c *gin.Context) {
	var request models.StatusNotificationRequest
	if !h.bind(c, &request) {
		return
	}

	if err := h.reportService.SendStatusNotification(c.Request.Context(), &request); err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification sent", nil)
}

func (h *ReportHandler) bind(c *gin.Context, request interface{}) bool {
	if err := c.ShouldBindJSON(request); err != nil {
		utils.ValidationErrorResponse(c, map[string]string{"body": "must be a JSON object"})
		return false
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.ValidationErrorResponse(c, utils.ValidationDetails(err))
		return false
	}

	return true
}

func (h *ReportHandler) handleError(c *gin.Context, err error) {
	var serviceErr *services.ServiceError
	errors.As(err, &serviceErr)

	switch {
	case errors.Is(err, services.ErrValidation):
		details := map[string]string{}
		if serviceErr != nil && len(serviceErr.Details) > 0 {
			details = serviceErr.Details
		} else {
			details["request"] = err.Error()
		}
		utils.ValidationErrorResponse(c, details)

	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, utils.ErrReportNotFound)

	case errors.Is(err, services.ErrDelivery):
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Notification delivery failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())

	case errors.Is(err, services.ErrDirectory):
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Directory operation failed")
		utils.ErrorResponse(c, http.StatusInternalServerError, utils.ErrDirectoryFailure)

	default:
		h.logger.WithContext(c.Request.Context()).WithError(err).Error("Unhandled error")
		utils.InternalServerErrorResponse(c)
	}
}
