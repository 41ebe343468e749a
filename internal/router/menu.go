// ABOUTME: Navigation menus for each service
// ABOUTME: Hand-authored tables consumed by the TUI and the service menu command

package router

// MenuItem is one navigation entry
type MenuItem struct {
	Key   string
	Label string
	Path  string
}

var smsMenu = []MenuItem{
	{Key: "c", Label: "Compose SMS", Path: "/sms/compose"},
	{Key: "h", Label: "SMS History", Path: "/sms/history"},
	{Key: "g", Label: "Contact Groups", Path: "/sms/contacts"},
	{Key: "b", Label: "Buy Credits", Path: "/sms/bundles"},
	{Key: "p", Label: "Payments", Path: "/payments"},
	{Key: "a", Label: "Account", Path: "/account"},
}

var inventoryMenu = []MenuItem{
	{Key: "d", Label: "Dashboard", Path: "/dashboard"},
	{Key: "s", Label: "Record Stock", Path: "/stock"},
	{Key: "h", Label: "Sales History", Path: "/sales"},
	{Key: "l", Label: "Stock Alerts", Path: "/inventory/alerts"},
	{Key: "e", Label: "Expenses", Path: "/expenses"},
	{Key: "a", Label: "Account", Path: "/account"},
}

// MenuFor returns a copy of the menu for s; ServiceNone has no menu
func MenuFor(s Service) []MenuItem {
	var src []MenuItem
	switch s {
	case ServiceSMS:
		src = smsMenu
	case ServiceInventory:
		src = inventoryMenu
	default:
		return nil
	}
	out := make([]MenuItem, len(src))
	copy(out, src)
	return out
}
