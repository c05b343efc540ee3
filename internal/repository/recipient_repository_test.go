package repository_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swapsync/broadcast-backend/internal/model"
	"github.com/swapsync/broadcast-backend/internal/repository"
)

var candidateColumns = []string{"id", "full_name", "phone", "role", "company_id", "name", "use_branding"}

func TestListCandidates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(candidateColumns).
		AddRow("rcp-001", "Alice Wanjiku", "+254700111222", "manager", 1, "Jambo Phones", true).
		AddRow("rcp-005", "Esther Njeri", "+254700999000", "manager", nil, "", false)
	mock.ExpectQuery("SELECT r.id, r.full_name").WillReturnRows(rows)

	repo := &repository.RecipientRepository{DB: db}
	recipients, err := repo.ListCandidates()
	require.NoError(t, err)
	require.Len(t, recipients, 2)

	assert.Equal(t, "rcp-001", recipients[0].ID)
	assert.Equal(t, model.RoleManager, recipients[0].Role)
	require.NotNil(t, recipients[0].CompanyID)
	assert.Equal(t, 1, *recipients[0].CompanyID)
	assert.True(t, recipients[0].UseCompanyBranding)

	// Recipients without a company carry a nil id and empty name.
	assert.Nil(t, recipients[1].CompanyID)
	assert.Empty(t, recipients[1].CompanyName)
}

func TestListCandidatesEmptyDirectory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT r.id, r.full_name").
		WillReturnRows(sqlmock.NewRows(candidateColumns))

	repo := &repository.RecipientRepository{DB: db}
	recipients, err := repo.ListCandidates()
	require.NoError(t, err)
	assert.Empty(t, recipients)
	assert.NotNil(t, recipients)
}

func TestIsCompanyBrandingEnabled(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT use_branding FROM companies").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"use_branding"}).AddRow(true))

	repo := &repository.RecipientRepository{DB: db}
	enabled, err := repo.IsCompanyBrandingEnabled(1)
	require.NoError(t, err)
	assert.True(t, enabled)
}

func TestIsCompanyBrandingEnabledMissingCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT use_branding FROM companies").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"use_branding"}))

	repo := &repository.RecipientRepository{DB: db}
	enabled, err := repo.IsCompanyBrandingEnabled(42)
	require.NoError(t, err)
	assert.False(t, enabled)
}
