// internal/service/dispatcher.go
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/swapsync/broadcast-backend/internal/gateway"
	"github.com/swapsync/broadcast-backend/internal/metrics"
	"github.com/swapsync/broadcast-backend/internal/model"
	"github.com/swapsync/broadcast-backend/internal/queue"
	"github.com/swapsync/broadcast-backend/internal/repository"
)

// e164Re matches directory phone numbers the gateway will accept.
var e164Re = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)

// Dispatcher fans one validated job out to the gateway, one bounded call
// per recipient, and accounts every outcome. A recipient failure never
// aborts the batch.
type Dispatcher struct {
	Directory   repository.RecipientRepositoryInterface
	Resolver    *BrandingResolver
	Gateway     gateway.Gateway
	Reports     queue.ReportPublisher
	Concurrency int
	SendTimeout time.Duration
	Log         zerolog.Logger
}

// Dispatch sends job to every target and returns the aggregate report.
// The only batch-level error is failing to read the directory snapshot;
// everything after that is recorded per recipient.
func (d *Dispatcher) Dispatch(ctx context.Context, job *model.BroadcastJob) (*model.DeliveryReport, error) {
	start := time.Now()

	// Fresh snapshot per dispatch; the composer's snapshot may be stale.
	candidates, err := d.Directory.ListCandidates()
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	byID := make(map[string]model.Recipient, len(candidates))
	for _, rec := range candidates {
		byID[rec.ID] = rec
	}

	limit := d.Concurrency
	if limit <= 0 {
		limit = 8
	}
	timeout := d.SendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Issued sends must finish and be recorded even if the caller goes
	// away, so per-send contexts carry only the timeout.
	base := context.WithoutCancel(ctx)

	outcomes := make([]model.DeliveryOutcome, len(job.TargetIDs))
	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, id := range job.TargetIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, id string) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = d.sendOne(base, job, byID, id, timeout)
		}(i, id)
	}
	wg.Wait()

	report := &model.DeliveryReport{
		JobID:      job.ID,
		Total:      len(outcomes),
		Outcomes:   outcomes,
		FinishedAt: time.Now(),
	}
	for _, o := range outcomes {
		if o.Success {
			report.Successful++
			metrics.DeliveriesTotal.WithLabelValues("sent").Inc()
		} else {
			report.Failed++
			metrics.DeliveriesTotal.WithLabelValues("failed").Inc()
		}
	}
	metrics.BroadcastsTotal.Inc()
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())

	if d.Reports != nil {
		if err := d.Reports.PublishReport(report); err != nil {
			d.Log.Warn().Err(err).Str("job", job.ID).Msg("report publish failed")
		}
	}

	level := zerolog.InfoLevel
	if report.Failed > 0 {
		level = zerolog.WarnLevel
	}
	d.Log.WithLevel(level).
		Str("job", job.ID).
		Int("total", report.Total).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Dur("dur", time.Since(start)).
		Msg("broadcast dispatched")

	return report, nil
}

func (d *Dispatcher) sendOne(ctx context.Context, job *model.BroadcastJob, byID map[string]model.Recipient, id string, timeout time.Duration) model.DeliveryOutcome {
	rec, ok := byID[id]
	if !ok {
		// Validated at compose time but gone from the fresh snapshot;
		// a directory-data problem, so a failed outcome rather than a
		// batch error.
		return model.DeliveryOutcome{RecipientID: id, Reason: model.ReasonInvalidDestination}
	}
	if !e164Re.MatchString(rec.PhoneNumber) {
		return model.DeliveryOutcome{RecipientID: id, Reason: model.ReasonInvalidDestination}
	}

	sender := d.Resolver.ResolveSenderName(job.Category, rec, job.SenderName)

	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := d.Gateway.Send(sctx, rec.PhoneNumber, sender, job.Body); err != nil {
		reason := model.ReasonGatewayRejected
		if errors.Is(err, context.DeadlineExceeded) {
			reason = model.ReasonGatewayTimeout
		}
		d.Log.Debug().Err(err).Str("job", job.ID).Str("recipient", id).Msg("send failed")
		return model.DeliveryOutcome{RecipientID: id, Reason: reason}
	}
	return model.DeliveryOutcome{RecipientID: id, Success: true}
}
