package bot

import (
	"slices"
	"strings"

	"sweetholes/internal/database"
)

// Component and modal custom IDs have the form "<kind>:<arg>".
const (
	kindRedeem = "redeem"
	kindOrder  = "order"
	kindMenu   = "menu"
	kindVendor = "vendor"
	kindModal  = "modal"
)

// Order panel actions
const (
	orderPlace  = "place"
	orderStatus = "status"
	orderCancel = "cancel"
)

// Vendor panel actions
const (
	vendorAdd    = "add"
	vendorRemove = "remove"
)

// redeemVendorList opens the vendor reward list instead of redeeming
const redeemVendorList = "vendor"

// Menu panel actions
const (
	menuComplaint        = "complaint"
	menuSuggestion       = "suggestion"
	menuPickup           = "pickup"
	menuTruth            = "truth"
	menuDare             = "dare"
	menuDaily            = "daily"
	menuTier             = "tier"
	menuApply            = "apply"
	menuAdminUpdateOrder = "admin_update_order"
	menuAdminGivePoints  = "admin_give_points"
	menuAdminViewOrders  = "admin_view_orders"
)

// Modal forms
const (
	formOrderPlace       = "order_place"
	formOrderCancel      = "order_cancel"
	formVendorAdd        = "vendor_add"
	formVendorRemove     = "vendor_remove"
	formComplaint        = "complaint"
	formSuggestion       = "suggestion"
	formApply            = "apply"
	formAdminUpdateOrder = "admin_update_order"
	formAdminGivePoints  = "admin_give_points"
)

var (
	orderActions  = []string{orderPlace, orderStatus, orderCancel}
	vendorActions = []string{vendorAdd, vendorRemove}
	menuActions   = []string{
		menuComplaint, menuSuggestion, menuPickup, menuTruth, menuDare,
		menuDaily, menuTier, menuApply,
		menuAdminUpdateOrder, menuAdminGivePoints, menuAdminViewOrders,
	}
	modalForms = []string{
		formOrderPlace, formOrderCancel, formVendorAdd, formVendorRemove,
		formComplaint, formSuggestion, formApply,
		formAdminUpdateOrder, formAdminGivePoints,
	}
)

// customID is a parsed component or modal ID
type customID struct {
	Kind string
	Arg  string
}

func (c customID) String() string {
	return c.Kind + ":" + c.Arg
}

func redeemButtonID(key string) string   { return customID{kindRedeem, key}.String() }
func orderButtonID(action string) string  { return customID{kindOrder, action}.String() }
func menuButtonID(action string) string   { return customID{kindMenu, action}.String() }
func vendorButtonID(action string) string { return customID{kindVendor, action}.String() }
func modalFormID(form string) string      { return customID{kindModal, form}.String() }

// parseCustomID validates raw against the known kinds and their arguments.
// Redeem arguments are catalog keys and are resolved later.
func parseCustomID(raw string) (customID, bool) {
	kind, arg, ok := strings.Cut(raw, ":")
	if !ok || arg == "" {
		return customID{}, false
	}

	id := customID{Kind: kind, Arg: arg}
	switch kind {
	case kindRedeem:
		if arg == redeemVendorList || isFixedKey(arg) {
			return id, true
		}
		_, ok := database.ParseVendorKey(arg)
		return id, ok
	case kindOrder:
		return id, slices.Contains(orderActions, arg)
	case kindVendor:
		return id, slices.Contains(vendorActions, arg)
	case kindMenu:
		return id, slices.Contains(menuActions, arg)
	case kindModal:
		return id, slices.Contains(modalForms, arg)
	}
	return customID{}, false
}

func isFixedKey(key string) bool {
	for _, e := range database.FixedCatalog {
		if e.Key == key {
			return true
		}
	}
	return false
}

