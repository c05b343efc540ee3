// internal/service/branding.go
package service

import (
	"fmt"

	"github.com/swapsync/broadcast-backend/internal/model"
)

// SystemSenderName is the fixed identity for system and greeting
// messages. Operators cannot override it and companies cannot claim it.
const SystemSenderName = "SwapSync"

// BrandingDirectory is the slice of the recipient directory the resolver
// consults for the transactional rule.
type BrandingDirectory interface {
	IsCompanyBrandingEnabled(companyID int) (bool, error)
}

// BrandingResolver decides the sender identity presented to a recipient.
type BrandingResolver struct {
	Directory BrandingDirectory
}

// ResolveSenderName applies the branding rules in priority order.
// userSuppliedName is a composition-preview hint only; it is silently
// overridden for system and greeting categories so operational messages
// can never impersonate a company's branding or vice versa. Resolution is
// total: a directory read error falls back to the system identity.
func (b *BrandingResolver) ResolveSenderName(category model.MessageCategory, rec model.Recipient, userSuppliedName string) string {
	switch category {
	case model.CategorySystem, model.CategoryGreeting:
		return SystemSenderName
	case model.CategoryTransactional:
		if rec.CompanyID == nil || rec.CompanyName == "" {
			return SystemSenderName
		}
		enabled, err := b.Directory.IsCompanyBrandingEnabled(*rec.CompanyID)
		if err != nil || !enabled {
			return SystemSenderName
		}
		return rec.CompanyName
	}
	panic(fmt.Sprintf("unknown message category: %q", category))
}
