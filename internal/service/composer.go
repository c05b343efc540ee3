// internal/service/composer.go
package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	appErrors "github.com/swapsync/broadcast-backend/internal/errors"
	"github.com/swapsync/broadcast-backend/internal/model"
)

// Composer validates raw input into an immutable BroadcastJob.
type Composer struct{}

// Prepare checks the selection against the candidate snapshot, then the
// message body, in that order; first failure wins. Duplicate ids in the
// selection collapse to one target. There is no maximum length;
// segmentation handles long bodies. senderName is the operator's display
// hint, carried on the job but resolved per recipient at dispatch time.
func (c *Composer) Prepare(rawText string, category model.MessageCategory, senderName string, selectedIDs []string, candidates []model.Recipient) (*model.BroadcastJob, error) {
	if len(selectedIDs) == 0 {
		return nil, appErrors.NewNoRecipients()
	}

	known := make(map[string]bool, len(candidates))
	for _, rec := range candidates {
		known[rec.ID] = true
	}

	seen := make(map[string]bool, len(selectedIDs))
	targets := make([]string, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if !known[id] {
			return nil, appErrors.NewUnknownRecipient(id)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		targets = append(targets, id)
	}

	body := strings.TrimSpace(rawText)
	if body == "" {
		return nil, appErrors.NewEmptyMessage()
	}

	return &model.BroadcastJob{
		ID:              uuid.NewString(),
		Body:            body,
		Category:        category,
		SenderName:      strings.TrimSpace(senderName),
		TargetIDs:       targets,
		Segments:        SegmentCount(body),
		CharsToBoundary: CharsToBoundary(body),
		CreatedAt:       time.Now(),
	}, nil
}

// SegmentCount is ceil(chars / 160) under the GSM 7-bit assumption
// declared on model.SegmentSize.
func SegmentCount(body string) int {
	n := utf8.RuneCountInString(body)
	return (n + model.SegmentSize - 1) / model.SegmentSize
}

// CharsToBoundary reports how many characters remain before the next
// segment boundary. A body of exactly 160 characters is one full segment,
// so the metric reports 160 remaining, never 0.
func CharsToBoundary(body string) int {
	n := utf8.RuneCountInString(body)
	rem := n % model.SegmentSize
	return model.SegmentSize - rem
}
