// internal/service/scheduler.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/swapsync/broadcast-backend/internal/metrics"
	"github.com/swapsync/broadcast-backend/internal/model"
	"github.com/swapsync/broadcast-backend/internal/repository"
)

const monthlyWishText = "Happy new month from SwapSync! Thank you for keeping your branch running. Here's to a great month of swaps, sales and repairs."

func holidayWishText(holiday string) string {
	return fmt.Sprintf("Happy %s from SwapSync! Wishing you and your team a wonderful celebration.", holiday)
}

// CampaignResult is the outcome of one campaign trigger.
type CampaignResult struct {
	Message string
	Report  *model.DeliveryReport
	// Skipped means the trigger was a no-op: the day's run already
	// exists, or the holiday gate did not open. Not an error.
	Skipped bool
}

func (r *CampaignResult) Sent() int {
	if r.Report == nil {
		return 0
	}
	return r.Report.Successful
}

// CampaignScheduler runs the two recurring campaigns on top of the
// composer and dispatcher, adding exactly one thing: at-most-one
// successful run per (type, local date).
type CampaignScheduler struct {
	Directory repository.RecipientRepositoryInterface
	Runs      repository.CampaignRunRepositoryInterface
	Composer  *Composer
	Dispatch  *Dispatcher
	Location  *time.Location
	// HolidaySendHour is the local hour at/after which the holiday
	// campaign may fire.
	HolidaySendHour int
	// Now is a clock hook for tests; nil means time.Now.
	Now func() time.Time
	Log zerolog.Logger
}

func (s *CampaignScheduler) now() time.Time {
	t := time.Now()
	if s.Now != nil {
		t = s.Now()
	}
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return t
}

// RunMonthly executes the operator-triggered monthly greeting.
func (s *CampaignScheduler) RunMonthly(ctx context.Context) (*CampaignResult, error) {
	return s.run(ctx, model.CampaignMonthly, monthlyWishText)
}

// RunHoliday executes the calendar-triggered holiday greeting. It is a
// no-op unless today is a known public holiday and local time has
// reached the send hour; the run record keeps repeated evaluations from
// sending twice.
func (s *CampaignScheduler) RunHoliday(ctx context.Context) (*CampaignResult, error) {
	today := s.now()
	holiday, ok := HolidayName(today)
	if !ok {
		return &CampaignResult{Skipped: true}, nil
	}
	if today.Hour() < s.HolidaySendHour {
		return &CampaignResult{Skipped: true}, nil
	}
	return s.run(ctx, model.CampaignHoliday, holidayWishText(holiday))
}

func (s *CampaignScheduler) run(ctx context.Context, campaignType model.CampaignType, message string) (*CampaignResult, error) {
	runDate := s.now().Format("2006-01-02")

	reserved, err := s.Runs.Reserve(campaignType, runDate)
	if err != nil {
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "failed").Inc()
		return nil, fmt.Errorf("reserve campaign run: %w", err)
	}
	if !reserved {
		s.Log.Info().
			Str("campaign", string(campaignType)).
			Str("date", runDate).
			Msg("campaign already ran today, skipping")
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "skipped").Inc()
		return &CampaignResult{Message: message, Skipped: true}, nil
	}

	candidates, err := s.Directory.ListCandidates()
	if err != nil {
		s.release(campaignType, runDate)
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "failed").Inc()
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	managerIDs := []string{}
	for _, rec := range candidates {
		if rec.IsManager() {
			managerIDs = append(managerIDs, rec.ID)
		}
	}
	if len(managerIDs) == 0 {
		// Empty directory is a valid state; the day still counts as run
		// so the trigger does not re-fire all day.
		if err := s.Runs.Complete(campaignType, runDate, 0); err != nil {
			s.Log.Warn().Err(err).Str("campaign", string(campaignType)).Msg("complete empty run failed")
		}
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "completed").Inc()
		return &CampaignResult{Message: message}, nil
	}

	job, err := s.Composer.Prepare(message, model.CategoryGreeting, "", managerIDs, candidates)
	if err != nil {
		s.release(campaignType, runDate)
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "failed").Inc()
		return nil, fmt.Errorf("prepare campaign job: %w", err)
	}

	report, err := s.Dispatch.Dispatch(ctx, job)
	if err != nil {
		// The dispatch could not be attempted, so the day's key is
		// handed back and a later retry is allowed.
		s.release(campaignType, runDate)
		metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "failed").Inc()
		return nil, fmt.Errorf("dispatch campaign: %w", err)
	}

	// A run with failed deliveries is still completed; idempotency
	// tracks "attempted once today", not per-recipient success.
	if err := s.Runs.Complete(campaignType, runDate, report.Successful); err != nil {
		s.Log.Warn().Err(err).Str("campaign", string(campaignType)).Msg("complete campaign run failed")
	}
	metrics.CampaignRunsTotal.WithLabelValues(string(campaignType), "completed").Inc()

	s.Log.Info().
		Str("campaign", string(campaignType)).
		Str("date", runDate).
		Int("sent", report.Successful).
		Int("failed", report.Failed).
		Msg("campaign run completed")

	return &CampaignResult{Message: message, Report: report}, nil
}

func (s *CampaignScheduler) release(campaignType model.CampaignType, runDate string) {
	if err := s.Runs.Release(campaignType, runDate); err != nil {
		s.Log.Error().Err(err).
			Str("campaign", string(campaignType)).
			Str("date", runDate).
			Msg("release campaign reservation failed")
	}
}

// StartHolidayCron evaluates the holiday campaign on an hourly tick in
// the scheduler's location. The reservation makes repeated ticks safe.
func (s *CampaignScheduler) StartHolidayCron(ctx context.Context) *cron.Cron {
	opts := []cron.Option{}
	if s.Location != nil {
		opts = append(opts, cron.WithLocation(s.Location))
	}
	c := cron.New(opts...)
	c.AddFunc("5 * * * *", func() {
		if _, err := s.RunHoliday(ctx); err != nil {
			s.Log.Error().Err(err).Msg("holiday campaign run failed")
		}
	})
	c.Start()
	return c
}
