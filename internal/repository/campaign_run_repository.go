// internal/repository/campaign_run_repository.go
package repository

import (
	"database/sql"
	"time"

	"github.com/swapsync/broadcast-backend/internal/model"
)

// CampaignRunRepositoryInterface persists the per-day campaign run markers
// that make scheduled triggers idempotent.
type CampaignRunRepositoryInterface interface {
	// Reserve atomically claims (campaignType, runDate). It returns false
	// when the key is already taken, which a caller treats as a no-op,
	// not an error. Two concurrent triggers for the same key see exactly
	// one true.
	Reserve(campaignType model.CampaignType, runDate string) (bool, error)
	// Complete marks a reserved run finished with the delivered count.
	Complete(campaignType model.CampaignType, runDate string, sent int) error
	// Release frees a reservation whose dispatch could not be attempted,
	// permitting a same-day retry. Completed runs are never released.
	Release(campaignType model.CampaignType, runDate string) error
	Get(campaignType model.CampaignType, runDate string) (*model.CampaignRun, error)
}

// CampaignRunRepository is the Postgres implementation.
type CampaignRunRepository struct {
	DB *sql.DB
}

func (r *CampaignRunRepository) Reserve(campaignType model.CampaignType, runDate string) (bool, error) {
	// Insert-or-nothing keeps the reservation atomic under concurrent
	// triggers; rows-affected tells the winner apart from the loser.
	query := `
        INSERT INTO campaign_runs (campaign_type, run_date, status, sent_count, created_at)
        VALUES ($1, $2, 'running', 0, NOW())
        ON CONFLICT (campaign_type, run_date) DO NOTHING
    `
	res, err := r.DB.Exec(query, campaignType, runDate)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *CampaignRunRepository) Complete(campaignType model.CampaignType, runDate string, sent int) error {
	query := `
        UPDATE campaign_runs
        SET status = 'completed', sent_count = $3, updated_at = NOW()
        WHERE campaign_type = $1 AND run_date = $2
    `
	_, err := r.DB.Exec(query, campaignType, runDate, sent)
	return err
}

func (r *CampaignRunRepository) Release(campaignType model.CampaignType, runDate string) error {
	// Guarded on status so a late failure path can never drop a
	// completed run's marker.
	query := `
        DELETE FROM campaign_runs
        WHERE campaign_type = $1 AND run_date = $2 AND status = 'running'
    `
	_, err := r.DB.Exec(query, campaignType, runDate)
	return err
}

func (r *CampaignRunRepository) Get(campaignType model.CampaignType, runDate string) (*model.CampaignRun, error) {
	query := `
        SELECT id, campaign_type, run_date, status, sent_count, created_at, updated_at
        FROM campaign_runs
        WHERE campaign_type = $1 AND run_date = $2
    `
	var run model.CampaignRun
	var date time.Time
	err := r.DB.QueryRow(query, campaignType, runDate).Scan(
		&run.ID, &run.Type, &date, &run.Status,
		&run.SentCount, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	run.RunDate = date.Format("2006-01-02")
	return &run, nil
}

var _ CampaignRunRepositoryInterface = (*CampaignRunRepository)(nil)
