// Package rules holds the fixed business lookup tables that classify a
// settlement document by its fiscal type code and the operator's declared
// role. The code families are:
//
//	186, 188  direct purchase settlement
//	180       consignment sale account
//	183, 185  consignment purchase settlement
//	190, 191  direct sale settlement
package rules

import (
	"strings"

	"haciendas/internal/domain"
)

// MovementFor maps a type code plus the declared role to a sale, a purchase,
// or a neutral movement. Unknown codes are neutral.
func MovementFor(typeCode int, role domain.Role) domain.Movement {
	switch typeCode {
	case 186, 188:
		if role == domain.RoleIssuer {
			return domain.MovementPurchase
		}
		return domain.MovementSale
	case 180:
		// The issuer is the consignment agent; only the recipient sells.
		if role == domain.RoleRecipient {
			return domain.MovementSale
		}
		return domain.MovementNeutral
	case 183, 185:
		// The issuer is the consignment agent; only the recipient buys.
		if role == domain.RoleRecipient {
			return domain.MovementPurchase
		}
		return domain.MovementNeutral
	case 190, 191:
		if role == domain.RoleIssuer {
			return domain.MovementSale
		}
		return domain.MovementPurchase
	}
	return domain.MovementNeutral
}

// InternalType maps a type code to the short document-type tag used on the
// accounting templates. Credit adjustments remap within each code family.
func InternalType(typeCode int, text string) string {
	t := strings.ToUpper(text)
	credit := strings.Contains(t, "AJUSTE") &&
		(strings.Contains(t, "CRÉDITO") || strings.Contains(t, "CREDITO"))

	switch typeCode {
	case 186, 188:
		if credit {
			return "CN"
		}
		return "CD"
	case 180:
		if credit {
			return "LA"
		}
		return "CV"
	case 183, 185:
		if credit {
			return "LN"
		}
		return "LC"
	case 190, 191:
		if credit {
			return "CN"
		}
		return "VC"
	}
	return "OTRO"
}
