// internal/handler/broadcast_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	appErrors "github.com/swapsync/broadcast-backend/internal/errors"
	"github.com/swapsync/broadcast-backend/internal/model"
	"github.com/swapsync/broadcast-backend/internal/repository"
	"github.com/swapsync/broadcast-backend/internal/service"
)

// BroadcastHandler holds the dependencies for the broadcast HTTP surface.
type BroadcastHandler struct {
	Recipients repository.RecipientRepositoryInterface
	Composer   *service.Composer
	Dispatcher *service.Dispatcher
	Scheduler  *service.CampaignScheduler
	Log        zerolog.Logger
}

type recipientView struct {
	ID                 string `json:"id"`
	FullName           string `json:"fullName"`
	CompanyName        string `json:"companyName"`
	PhoneNumber        string `json:"phoneNumber"`
	Role               string `json:"role"`
	IsManager          bool   `json:"isManager"`
	UseCompanyBranding bool   `json:"useCompanyBranding"`
}

// ListRecipientsHandler returns the current candidate set. Always a fresh
// directory read; an empty list is a valid response.
func (h *BroadcastHandler) ListRecipientsHandler(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.Recipients.ListCandidates()
	if err != nil {
		h.Log.Error().Err(err).Msg("list recipients failed")
		writeError(w, http.StatusBadGateway, "recipient directory unavailable")
		return
	}

	views := make([]recipientView, 0, len(candidates))
	for _, rec := range candidates {
		views = append(views, recipientView{
			ID:                 rec.ID,
			FullName:           rec.FullName,
			CompanyName:        rec.CompanyName,
			PhoneNumber:        rec.PhoneNumber,
			Role:               string(rec.Role),
			IsManager:          rec.IsManager(),
			UseCompanyBranding: rec.UseCompanyBranding,
		})
	}
	writeJSON(w, http.StatusOK, views)
}

// SendBroadcastHandler validates and dispatches an ad hoc system
// broadcast. Partial delivery failure is still a 200; the batch itself
// succeeded.
func (h *BroadcastHandler) SendBroadcastHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RecipientIDs []string `json:"recipientIds"`
		Message      string   `json:"message"`
		SenderName   string   `json:"senderName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	candidates, err := h.Recipients.ListCandidates()
	if err != nil {
		h.Log.Error().Err(err).Msg("list candidates failed")
		writeError(w, http.StatusBadGateway, "recipient directory unavailable")
		return
	}

	job, err := h.Composer.Prepare(payload.Message, model.CategorySystem, payload.SenderName, payload.RecipientIDs, candidates)
	if err != nil {
		if appErrors.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := h.Dispatcher.Dispatch(r.Context(), job)
	if err != nil {
		h.Log.Error().Err(err).Str("job", job.ID).Msg("dispatch failed")
		writeError(w, http.StatusBadGateway, "dispatch could not be attempted")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totalRecipients": report.Total,
		"successful":      report.Successful,
		"failed":          report.Failed,
		"segments":        job.Segments,
		"outcomes":        report.Outcomes,
	})
}

// MonthlyWishesHandler triggers the monthly greeting campaign. A second
// trigger on the same day is a successful no-op.
func (h *BroadcastHandler) MonthlyWishesHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Scheduler.RunMonthly(r.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("monthly campaign failed")
		writeError(w, http.StatusInternalServerError, "monthly campaign run failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": result.Message,
		"sent":    result.Sent(),
	})
}

// HealthHandler is a liveness probe.
func (h *BroadcastHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError carries a human-readable detail string, the shape the
// composition UI renders for 4xx responses.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
