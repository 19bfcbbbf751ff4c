package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
	"alertcast/internal/services"
	"alertcast/internal/utils"
)

type mockReportService struct {
	mock.Mock
}

func (m *mockReportService) PublicizeReport(ctx context.Context, reportID string) (*models.PublishResult, error) {
	args := m.Called(ctx, reportID)
	result, _ := args.Get(0).(*models.PublishResult)
	return result, args.Error(1)
}

func (m *mockReportService) RegisterPushToken(ctx context.Context, uid, token string) error {
	return m.Called(ctx, uid, token).Error(0)
}

func (m *mockReportService) SendStatusNotification(ctx context.Context, request *models.StatusNotificationRequest) error {
	return m.Called(ctx, request).Error(0)
}

func setupRouter(service services.ReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewReportHandler(service, nil)
	router.POST("/publicize_report", handler.PublicizeReport)
	router.POST("/register_fcm_token", handler.RegisterFCMToken)
	router.POST("/send_status_notification", handler.SendStatusNotification)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestPublicizeReport(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(m *mockReportService)
		wantStatus  int
		wantSuccess bool
		wantMessage string
	}{
		{
			name: "published",
			body: `{"reportId":"r1"}`,
			setup: func(m *mockReportService) {
				m.On("PublicizeReport", mock.Anything, "r1").
					Return(&models.PublishResult{Report: &models.Report{ID: "r1"}, Dispatch: models.NewDispatchReport()}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Report r1 has been publicized",
		},
		{
			name: "already published",
			body: `{"reportId":"r1"}`,
			setup: func(m *mockReportService) {
				m.On("PublicizeReport", mock.Anything, "r1").
					Return(&models.PublishResult{Report: &models.Report{ID: "r1"}, AlreadyPublished: true}, nil)
			},
			wantStatus:  http.StatusOK,
			wantSuccess: true,
			wantMessage: "Report r1 was already publicized",
		},
		{
			name: "not found",
			body: `{"reportId":"missing"}`,
			setup: func(m *mockReportService) {
				m.On("PublicizeReport", mock.Anything, "missing").
					Return(nil, &services.ServiceError{Kind: services.KindNotFound, Err: interfaces.ErrNotFound})
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "directory failure",
			body: `{"reportId":"r1"}`,
			setup: func(m *mockReportService) {
				m.On("PublicizeReport", mock.Anything, "r1").
					Return(nil, &services.ServiceError{Kind: services.KindDirectory, Err: errors.New("unavailable")})
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &mockReportService{}
			tt.setup(service)

			w, response := doRequest(t, setupRouter(service), "/publicize_report", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantSuccess, response.Success)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, response.Message)
			}
			if !tt.wantSuccess {
				assert.NotEmpty(t, response.Error)
			}
			service.AssertExpectations(t)
		})
	}
}

func TestPublicizeReport_MissingReportID(t *testing.T) {
	for _, body := range []string{`{}`, `{"reportId":""}`, ``, `not json`} {
		service := &mockReportService{}

		w, response := doRequest(t, setupRouter(service), "/publicize_report", body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.False(t, response.Success)
		service.AssertNotCalled(t, "PublicizeReport", mock.Anything, mock.Anything)
	}
}

func TestPublicizeReport_ValidationDetails(t *testing.T) {
	service := &mockReportService{}

	_, response := doRequest(t, setupRouter(service), "/publicize_report", `{}`)

	assert.Equal(t, map[string]string{"reportId": "is required"}, response.Details)
}

func TestRegisterFCMToken(t *testing.T) {
	t.Run("registers", func(t *testing.T) {
		service := &mockReportService{}
		service.On("RegisterPushToken", mock.Anything, "u1", "tok").Return(nil)

		w, response := doRequest(t, setupRouter(service), "/register_fcm_token", `{"uid":"u1","token":"tok"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, response.Success)
		service.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		service := &mockReportService{}

		w, response := doRequest(t, setupRouter(service), "/register_fcm_token", `{"uid":"u1"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "is required", response.Details["token"])
		service.AssertNotCalled(t, "RegisterPushToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("service validation", func(t *testing.T) {
		service := &mockReportService{}
		service.On("RegisterPushToken", mock.Anything, "a/b", "tok").
			Return(&services.ServiceError{Kind: services.KindValidation, Err: interfaces.ErrInvalidID})

		w, _ := doRequest(t, setupRouter(service), "/register_fcm_token", `{"uid":"a/b","token":"tok"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSendStatusNotification(t *testing.T) {
	t.Run("sends", func(t *testing.T) {
		service := &mockReportService{}
		service.On("SendStatusNotification", mock.Anything, mock.MatchedBy(func(r *models.StatusNotificationRequest) bool {
			return r.Token == "tok" && r.Data["step"] == "2"
		})).Return(nil)

		w, response := doRequest(t, setupRouter(service), "/send_status_notification",
			`{"token":"tok","title":"Update","body":"On the way","data":{"step":"2"}}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, response.Success)
		service.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		service := &mockReportService{}

		w, _ := doRequest(t, setupRouter(service), "/send_status_notification", `{"token":"tok","body":"b"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		service.AssertNotCalled(t, "SendStatusNotification", mock.Anything, mock.Anything)
	})

	t.Run("delivery failure", func(t *testing.T) {
		service := &mockReportService{}
		service.On("SendStatusNotification", mock.Anything, mock.Anything).
			Return(&services.ServiceError{Kind: services.KindDelivery, Op: "send status notification", Err: errors.New("fcm: unregistered")})

		w, response := doRequest(t, setupRouter(service), "/send_status_notification", `{"token":"tok","title":"t","body":"b"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, response.Error, "fcm: unregistered")
	})
}
