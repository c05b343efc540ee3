package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/swapsync/broadcast-backend/internal/model"
)

// Shared fakes for the service tests.

type fakeDirectory struct {
	recipients  []model.Recipient
	err         error
	branding    map[int]bool
	brandingErr error
}

func (f *fakeDirectory) ListCandidates() ([]model.Recipient, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.recipients, nil
}

func (f *fakeDirectory) IsCompanyBrandingEnabled(companyID int) (bool, error) {
	if f.brandingErr != nil {
		return false, f.brandingErr
	}
	return f.branding[companyID], nil
}

type fakeGateway struct {
	mu      sync.Mutex
	sends   []string          // destinations in call order
	senders map[string]string // destination -> resolved sender name
	failFor map[string]error
	delay   time.Duration
}

func (g *fakeGateway) Send(ctx context.Context, to, senderName, body string) error {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	g.mu.Lock()
	g.sends = append(g.sends, to)
	if g.senders == nil {
		g.senders = map[string]string{}
	}
	g.senders[to] = senderName
	g.mu.Unlock()
	if err := g.failFor[to]; err != nil {
		return err
	}
	return nil
}

func (g *fakeGateway) sendCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sends)
}

type captureReports struct {
	mu      sync.Mutex
	reports []*model.DeliveryReport
}

func (c *captureReports) PublishReport(report *model.DeliveryReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, report)
	return nil
}

type memRunRepo struct {
	mu   sync.Mutex
	runs map[string]*model.CampaignRun
}

func newMemRunRepo() *memRunRepo {
	return &memRunRepo{runs: map[string]*model.CampaignRun{}}
}

func runKey(t model.CampaignType, date string) string {
	return string(t) + "|" + date
}

func (m *memRunRepo) Reserve(campaignType model.CampaignType, runDate string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := runKey(campaignType, runDate)
	if _, exists := m.runs[key]; exists {
		return false, nil
	}
	m.runs[key] = &model.CampaignRun{
		Type:      campaignType,
		RunDate:   runDate,
		Status:    model.RunRunning,
		CreatedAt: time.Now(),
	}
	return true, nil
}

func (m *memRunRepo) Complete(campaignType model.CampaignType, runDate string, sent int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run, ok := m.runs[runKey(campaignType, runDate)]; ok {
		run.Status = model.RunCompleted
		run.SentCount = sent
	}
	return nil
}

func (m *memRunRepo) Release(campaignType model.CampaignType, runDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := runKey(campaignType, runDate)
	if run, ok := m.runs[key]; ok && run.Status == model.RunRunning {
		delete(m.runs, key)
	}
	return nil
}

func (m *memRunRepo) Get(campaignType model.CampaignType, runDate string) (*model.CampaignRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.runs[runKey(campaignType, runDate)], nil
}

func companyID(id int) *int { return &id }

func testCandidates() []model.Recipient {
	return []model.Recipient{
		{ID: "mgr-1", FullName: "Alice Wanjiku", PhoneNumber: "+254700000001", Role: model.RoleManager, CompanyID: companyID(1), CompanyName: "Jambo Phones", UseCompanyBranding: true},
		{ID: "mgr-2", FullName: "Brian Otieno", PhoneNumber: "+254700000002", Role: model.RoleAdmin, CompanyID: companyID(2), CompanyName: "Coast Mobile"},
		{ID: "stf-1", FullName: "Cynthia Achieng", PhoneNumber: "+254700000003", Role: model.RoleStaff, CompanyID: companyID(1), CompanyName: "Jambo Phones", UseCompanyBranding: true},
	}
}
