// internal/repository/recipient_repository.go
package repository

import (
	"database/sql"

	"github.com/swapsync/broadcast-backend/internal/model"
)

// RecipientRepositoryInterface is the read-only contract over the external
// recipient directory.
type RecipientRepositoryInterface interface {
	// ListCandidates returns a snapshot of the candidate set. Callers must
	// re-fetch per dispatch rather than cache, so directory changes
	// (staff added/removed, branding toggled) are always reflected.
	ListCandidates() ([]model.Recipient, error)
	IsCompanyBrandingEnabled(companyID int) (bool, error)
}

// RecipientRepository is the Postgres implementation.
type RecipientRepository struct {
	DB *sql.DB
}

func (r *RecipientRepository) ListCandidates() ([]model.Recipient, error) {
	query := `
        SELECT r.id, r.full_name, r.phone, r.role, r.company_id,
               COALESCE(c.name, ''), COALESCE(c.use_branding, FALSE)
        FROM recipients r
        LEFT JOIN companies c ON c.id = r.company_id
        ORDER BY r.full_name
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		var companyID sql.NullInt64
		if err := rows.Scan(
			&rec.ID, &rec.FullName, &rec.PhoneNumber, &rec.Role,
			&companyID, &rec.CompanyName, &rec.UseCompanyBranding,
		); err != nil {
			return nil, err
		}
		if companyID.Valid {
			id := int(companyID.Int64)
			rec.CompanyID = &id
		}
		recipients = append(recipients, rec)
	}
	return recipients, rows.Err()
}

func (r *RecipientRepository) IsCompanyBrandingEnabled(companyID int) (bool, error) {
	var enabled bool
	err := r.DB.QueryRow(
		`SELECT use_branding FROM companies WHERE id = $1`, companyID,
	).Scan(&enabled)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	return enabled, nil
}

var _ RecipientRepositoryInterface = (*RecipientRepository)(nil)
