package product

import "strings"

// NormalizeCategory maps the free-form category strings admins enter to the
// display names the storefront groups by.
func NormalizeCategory(category string) string {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "vip", "vip üyelikler", "vip uyelikler":
		return "VIP Üyelikler"
	case "crate", "crates", "kutular", "kutu":
		return "Kutular"
	case "kozmetik", "kozmetikler", "cosmetic":
		return "Kozmetikler"
	case "currency", "credit", "credits":
		return DefaultCategory
	}
	if category == "" {
		return DefaultCategory
	}
	return category
}
