// internal/model/broadcast.go
package model

import "time"

// MessageCategory decides which branding rule applies to a send.
type MessageCategory string

const (
	// CategorySystem is an admin-composed ad hoc broadcast.
	CategorySystem MessageCategory = "system"
	// CategoryTransactional is generated by business operations
	// (swaps, sales, repairs). Referenced by the branding rule only;
	// those operations live outside this engine.
	CategoryTransactional MessageCategory = "transactional"
	// CategoryGreeting covers the monthly and holiday campaigns.
	CategoryGreeting MessageCategory = "greeting"
)

func (c MessageCategory) Valid() bool {
	switch c {
	case CategorySystem, CategoryTransactional, CategoryGreeting:
		return true
	}
	return false
}

// SegmentSize is the per-segment character budget assuming the GSM 7-bit
// alphabet. Unicode bodies would need a 70-character budget instead; that
// is a known simplification, not handled here.
const SegmentSize = 160

// BroadcastJob is one validated send attempt. Built once by the composer
// and never mutated afterwards.
type BroadcastJob struct {
	ID         string          `json:"id"`
	Body       string          `json:"body"`
	Category   MessageCategory `json:"category"`
	SenderName string          `json:"senderName,omitempty"` // operator hint, never authoritative
	TargetIDs  []string        `json:"targetIds"`            // deduplicated, original order
	Segments   int             `json:"segments"`
	// CharsToBoundary is the preview metric "characters until the next
	// segment boundary". An exact multiple of SegmentSize reports a full
	// 160, not 0.
	CharsToBoundary int       `json:"charsToBoundary"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FailureReason classifies a failed per-recipient delivery.
type FailureReason string

const (
	ReasonInvalidDestination FailureReason = "InvalidDestination"
	ReasonGatewayTimeout     FailureReason = "GatewayTimeout"
	ReasonGatewayRejected    FailureReason = "GatewayRejected"
)

// DeliveryOutcome is the result for a single recipient of a job.
type DeliveryOutcome struct {
	RecipientID string        `json:"recipientId"`
	Success     bool          `json:"success"`
	Reason      FailureReason `json:"reason,omitempty"`
}

// DeliveryReport aggregates the outcomes of one job.
// Total == Successful + Failed == len(job.TargetIDs) always holds.
type DeliveryReport struct {
	JobID      string            `json:"jobId"`
	Total      int               `json:"totalRecipients"`
	Successful int               `json:"successful"`
	Failed     int               `json:"failed"`
	Outcomes   []DeliveryOutcome `json:"outcomes"`
	FinishedAt time.Time         `json:"finishedAt"`
}
