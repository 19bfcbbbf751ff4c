package services

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"alertcast/internal/models"
	"alertcast/internal/repositories/interfaces"
	"alertcast/pkg/push"
	"alertcast/pkg/sms"
)

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*models.Report
	getErr  error
	markErr error
	gets    int
	writes  []string
}

func newFakeReportRepo(reports ...*models.Report) *fakeReportRepo {
	repo := &fakeReportRepo{reports: map[string]*models.Report{}}
	for _, r := range reports {
		repo.reports[r.ID] = r
	}
	return repo
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.getErr != nil {
		return nil, r.getErr
	}
	report, ok := r.reports[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *report
	return &copied, nil
}

func (r *fakeReportRepo) MarkPublished(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.markErr != nil {
		return r.markErr
	}
	r.writes = append(r.writes, id)
	if report, ok := r.reports[id]; ok {
		report.Published = true
	}
	return nil
}

func (r *fakeReportRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

type fakeUserRepo struct {
	recipients []models.PushRecipient
	contacts   map[string]map[string]models.EmergencyContact
	listErr    error
	contactErr error
	updateErr  error
	reads      int
	tokens     map[string]string
}

func (r *fakeUserRepo) ListPushRecipients(context.Context) ([]models.PushRecipient, error) {
	r.reads++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]models.PushRecipient(nil), r.recipients...), nil
}

func (r *fakeUserRepo) GetEmergencyContacts(_ context.Context, uid string) (map[string]models.EmergencyContact, error) {
	r.reads++
	if r.contactErr != nil {
		return nil, r.contactErr
	}
	contacts, ok := r.contacts[uid]
	if !ok {
		return map[string]models.EmergencyContact{}, nil
	}
	return contacts, nil
}

func (r *fakeUserRepo) UpdatePushToken(_ context.Context, uid, token string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if r.tokens == nil {
		r.tokens = map[string]string{}
	}
	r.tokens[uid] = token
	return nil
}

type mockPushProvider struct {
	mock.Mock
}

func (m *mockPushProvider) Name() string {
	return "mock-push"
}

func (m *mockPushProvider) SendNotification(ctx context.Context, request *push.NotificationRequest) (*push.NotificationResponse, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*push.NotificationResponse)
	return response, args.Error(1)
}

type mockSMSProvider struct {
	mock.Mock
}

func (m *mockSMSProvider) Name() string {
	return "mock-sms"
}

func (m *mockSMSProvider) SendSMS(ctx context.Context, request *sms.SMSRequest) (*sms.SMSResponse, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*sms.SMSResponse)
	return response, args.Error(1)
}

// funcPushProvider lets a test control timing or panic inside a send.
type funcPushProvider func(ctx context.Context, request *push.NotificationRequest) (*push.NotificationResponse, error)

func (f funcPushProvider) Name() string {
	return "func-push"
}

func (f funcPushProvider) SendNotification(ctx context.Context, request *push.NotificationRequest) (*push.NotificationResponse, error) {
	return f(ctx, request)
}

type fakeClaimer struct {
	mu      sync.Mutex
	keys    map[string]bool
	err     error
	deleted []string
}

func (c *fakeClaimer) SetNX(_ context.Context, key string, _ interface{}, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	if c.keys == nil {
		c.keys = map[string]bool{}
	}
	if c.keys[key] {
		return false, nil
	}
	c.keys[key] = true
	return true, nil
}

func (c *fakeClaimer) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.keys, key)
		c.deleted = append(c.deleted, key)
	}
	return nil
}

func int64Ptr(v int64) *int64 {
	return &v
}
