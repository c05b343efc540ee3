// internal/model/campaign.go
package model

import "time"

// CampaignType identifies one of the recurring campaigns.
type CampaignType string

const (
	CampaignMonthly CampaignType = "monthly_wishes"
	CampaignHoliday CampaignType = "holiday_wishes"
)

// RunStatus is the lifecycle of a campaign run record.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
)

// CampaignRun marks that a campaign executed for a local calendar date.
// The (Type, RunDate) pair is unique; the row is inserted to reserve the
// day and never overwritten.
type CampaignRun struct {
	ID        int          `db:"id" json:"id"`
	Type      CampaignType `db:"campaign_type" json:"campaignType"`
	RunDate   string       `db:"run_date" json:"runDate"` // YYYY-MM-DD, scheduler-local
	Status    RunStatus    `db:"status" json:"status"`
	SentCount int          `db:"sent_count" json:"sentCount"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt *time.Time   `db:"updated_at" json:"updatedAt,omitempty"`
}
