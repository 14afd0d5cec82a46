package tui

import (
	"mineboard/internal/query"
)

type panel int

const (
	panelAds panel = iota
	panelPackages
	panelKYC
	panelUsers
	panelEvents
	panelSecrets
	panelMining
	panelBranding
	panelPayments
	panelKnowledge
	panelAudit
)

var panelOrder = []panel{
	panelAds, panelPackages, panelKYC, panelUsers, panelEvents,
	panelSecrets, panelMining, panelBranding, panelPayments, panelKnowledge,
	panelAudit,
}

func (p panel) String() string {
	switch p {
	case panelAds:
		return "ads"
	case panelPackages:
		return "packages"
	case panelKYC:
		return "kyc"
	case panelUsers:
		return "users"
	case panelEvents:
		return "events"
	case panelSecrets:
		return "secrets"
	case panelMining:
		return "mining"
	case panelBranding:
		return "branding"
	case panelPayments:
		return "payments"
	case panelKnowledge:
		return "knowledge"
	case panelAudit:
		return "audit"
	default:
		return "unknown"
	}
}

func (p panel) title() string {
	switch p {
	case panelAds:
		return "Ads"
	case panelPackages:
		return "Token Packages"
	case panelKYC:
		return "KYC Review"
	case panelUsers:
		return "Users"
	case panelEvents:
		return "Events"
	case panelSecrets:
		return "System Secrets"
	case panelMining:
		return "Mining"
	case panelBranding:
		return "Branding"
	case panelPayments:
		return "Payments"
	case panelKnowledge:
		return "Knowledge Base"
	case panelAudit:
		return "Audit Log"
	default:
		return "?"
	}
}

func panelFromString(s string) (panel, bool) {
	for _, p := range panelOrder {
		if p.String() == s {
			return p, true
		}
	}
	return panelAds, false
}

// queryUpdateMsg delivers a query cache snapshot for one subscription. The
// subscription rides along so the listener can re-arm on the right channel
// after a filter swap.
type queryUpdateMsg struct {
	panel panel
	sub   *query.Subscription
	res   query.Result
}

// mutationDoneMsg reports a settled mutation back to the UI loop.
type mutationDoneMsg struct {
	panel  panel
	action string
	record string
	err    error
}

// sweepTickMsg drives periodic cache GC.
type sweepTickMsg struct{}

// flashDoneMsg clears the transient status line.
type flashDoneMsg struct{ seq int }

type formFocus int

const (
	formFocusFields formFocus = iota
	formFocusSave
	formFocusCancel
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)
