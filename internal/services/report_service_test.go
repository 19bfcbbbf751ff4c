package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alertcast/internal/models"
	"alertcast/pkg/push"
	"alertcast/pkg/sms"
)

type reportServiceFixture struct {
	reports *fakeReportRepo
	users   *fakeUserRepo
	push    *mockPushProvider
	sms     *mockSMSProvider
	service ReportService
}

func newReportServiceFixture(reports *fakeReportRepo, users *fakeUserRepo) *reportServiceFixture {
	f := &reportServiceFixture{
		reports: reports,
		users:   users,
		push:    &mockPushProvider{},
		sms:     &mockSMSProvider{},
	}
	f.service = NewReportService(
		NewPublicationGuard(reports, GuardOptions{}, nil),
		NewAlertComposer("", time.UTC),
		NewRecipientDirectory(users),
		NewDispatchEngine(f.push, f.sms, DispatchOptions{}, nil),
		NewStatusNotifier(f.push, 0, nil),
		nil,
	)
	return f
}

func TestReportService_PublicizeReport(t *testing.T) {
	reports := newFakeReportRepo(&models.Report{
		ID:            "r1",
		EmergencyType: "Medical",
		LocationType:  models.LocationTypeHomeAddress,
		LocationRaw:   "Block 5",
		ReporterID:    "reporter",
	})
	users := &fakeUserRepo{
		recipients: []models.PushRecipient{{UID: "u1", Token: "t1"}, {UID: "u2", Token: "t2"}},
		contacts: map[string]map[string]models.EmergencyContact{
			"reporter": {"c1": {Name: "Mom", PhoneNumber: "+15550001"}},
		},
	}
	f := newReportServiceFixture(reports, users)
	f.push.On("SendNotification", mock.Anything, mock.MatchedBy(func(r *push.NotificationRequest) bool {
		return r.Body == "Medical\nLocation: Block 5\nReported: Unknown"
	})).Return(&push.NotificationResponse{Success: true}, nil).Twice()
	f.sms.On("SendSMS", mock.Anything, mock.MatchedBy(func(r *sms.SMSRequest) bool {
		return r.To == "+15550001" && r.Message == "Emergency Alert: Medical\nLocation: Block 5\nReported: Unknown"
	})).Return(&sms.SMSResponse{Status: "queued"}, nil).Once()

	result, err := f.service.PublicizeReport(context.Background(), "r1")

	require.NoError(t, err)
	assert.False(t, result.AlreadyPublished)
	assert.True(t, result.Report.Published)
	require.NotNil(t, result.Dispatch)
	assert.Equal(t, 2, result.Dispatch.Channels[models.ChannelPush].Succeeded)
	assert.Equal(t, 1, result.Dispatch.Channels[models.ChannelSMS].Succeeded)
	f.push.AssertExpectations(t)
	f.sms.AssertExpectations(t)
}

func TestReportService_PublicizeAlreadyPublished(t *testing.T) {
	reports := newFakeReportRepo(&models.Report{ID: "r1", Published: true})
	f := newReportServiceFixture(reports, &fakeUserRepo{recipients: []models.PushRecipient{{UID: "u1", Token: "t1"}}})

	result, err := f.service.PublicizeReport(context.Background(), "r1")

	require.NoError(t, err)
	assert.True(t, result.AlreadyPublished)
	assert.Nil(t, result.Dispatch)
	assert.Zero(t, f.users.reads)
	f.push.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}

func TestReportService_PublicizeNotFound(t *testing.T) {
	f := newReportServiceFixture(newFakeReportRepo(), &fakeUserRepo{recipients: []models.PushRecipient{{UID: "u1", Token: "t1"}}})

	_, err := f.service.PublicizeReport(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.users.reads)
	f.push.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}

func TestReportService_PublicizeEmptyDirectory(t *testing.T) {
	f := newReportServiceFixture(newFakeReportRepo(&models.Report{ID: "r1"}), &fakeUserRepo{})

	result, err := f.service.PublicizeReport(context.Background(), "r1")

	require.NoError(t, err)
	assert.Zero(t, result.Dispatch.Attempted())
	assert.True(t, result.Report.Published)
}

func TestReportService_PublicizeDirectoryFailure(t *testing.T) {
	reports := newFakeReportRepo(&models.Report{ID: "r1"})
	users := &fakeUserRepo{listErr: errors.New("database offline")}
	f := newReportServiceFixture(reports, users)

	_, err := f.service.PublicizeReport(context.Background(), "r1")

	assert.ErrorIs(t, err, ErrDirectory)
	assert.Zero(t, reports.writeCount())
	f.push.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
	f.sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything)

	t.Run("retry dispatches once the directory recovers", func(t *testing.T) {
		users.listErr = nil
		users.recipients = []models.PushRecipient{{UID: "u1", Token: "t1"}}
		f.push.On("SendNotification", mock.Anything, mock.Anything).
			Return(&push.NotificationResponse{Success: true}, nil).Once()

		result, err := f.service.PublicizeReport(context.Background(), "r1")

		require.NoError(t, err)
		assert.False(t, result.AlreadyPublished)
		require.NotNil(t, result.Dispatch)
		assert.Equal(t, 1, result.Dispatch.Channels[models.ChannelPush].Succeeded)
		assert.Equal(t, 1, reports.writeCount())
		f.push.AssertExpectations(t)
	})
}

func TestReportService_PublicizeContactsFailure(t *testing.T) {
	reports := newFakeReportRepo(&models.Report{ID: "r1", ReporterID: "reporter"})
	f := newReportServiceFixture(reports, &fakeUserRepo{contactErr: errors.New("timeout")})

	_, err := f.service.PublicizeReport(context.Background(), "r1")

	assert.ErrorIs(t, err, ErrDirectory)
	assert.Zero(t, reports.writeCount())
}

func TestReportService_PublicizeDeliveryFailuresAreNotErrors(t *testing.T) {
	f := newReportServiceFixture(
		newFakeReportRepo(&models.Report{ID: "r1"}),
		&fakeUserRepo{recipients: []models.PushRecipient{{UID: "u1", Token: "t1"}}},
	)
	f.push.On("SendNotification", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

	result, err := f.service.PublicizeReport(context.Background(), "r1")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Dispatch.Failed())
}

func TestReportService_RegisterPushToken(t *testing.T) {
	users := &fakeUserRepo{}
	f := newReportServiceFixture(newFakeReportRepo(), users)

	require.NoError(t, f.service.RegisterPushToken(context.Background(), "u1", "tok"))
	assert.Equal(t, "tok", users.tokens["u1"])

	assert.ErrorIs(t, f.service.RegisterPushToken(context.Background(), "u1", ""), ErrValidation)
}

func TestReportService_SendStatusNotification(t *testing.T) {
	f := newReportServiceFixture(newFakeReportRepo(), &fakeUserRepo{})
	f.push.On("SendNotification", mock.Anything, mock.Anything).
		Return(&push.NotificationResponse{Success: true}, nil).Once()

	err := f.service.SendStatusNotification(context.Background(), &models.StatusNotificationRequest{
		Token: "tok",
		Title: "Status",
		Body:  "Resolved",
	})

	require.NoError(t, err)
	f.push.AssertExpectations(t)
}
