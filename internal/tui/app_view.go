package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mineboard/internal/model"
)

func modalStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccentFg).
		Padding(1, 2)
}

func buttonStyle(focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().Padding(0, 2).Background(colorControlBg).Foreground(colorSurfaceFg)
	if focused {
		st = st.Background(colorSelectedBg).Foreground(colorSelectedFg).Bold(true)
	}
	return st
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "starting…"
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	b.WriteString(m.viewStatusLine())
	b.WriteString("\n\n")

	if m.dialogs[m.active].isOpen() {
		b.WriteString(m.viewDialog())
	} else {
		b.WriteString(m.viewPanel())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewTabs() string {
	tabs := make([]string, 0, len(panelOrder))
	for _, p := range panelOrder {
		if p == m.active {
			tabs = append(tabs, styleTabActive().Render(p.title()))
		} else {
			tabs = append(tabs, styleTab().Render(p.title()))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.width > 0 {
		row = lipgloss.NewStyle().MaxWidth(m.width).Render(row)
	}
	return row
}

func (m appModel) viewStatusLine() string {
	parts := []string{}
	if m.loading[m.active] {
		parts = append(parts, styleMuted().Render("loading…"))
	} else if m.staleView[m.active] {
		parts = append(parts, styleMuted().Render("refreshing…"))
	}
	if err := m.queryErr[m.active]; err != "" {
		parts = append(parts, styleError().Render(err))
	}
	if m.active == panelKYC {
		filter := string(m.kycFilter)
		if filter == "" {
			filter = "all"
		}
		parts = append(parts, styleMuted().Render("filter: "+filter))
	}
	if m.active == panelPayments {
		parts = append(parts, styleMuted().Render("provider: "+string(m.paymentProvider)))
	}
	if len(parts) == 0 {
		return " "
	}
	return strings.Join(parts, "  ")
}

func (m appModel) viewPanel() string {
	switch m.active {
	case panelMining:
		return m.viewMining()
	case panelBranding:
		return m.viewBranding()
	case panelPayments:
		return m.viewPayments()
	default:
		return m.lists[m.active].View()
	}
}

func (m appModel) viewMining() string {
	var b strings.Builder
	if s := m.data.miningStats; s != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Mining stats"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  active miners     %d / %d\n", s.ActiveMiners, s.TotalMiners)
		fmt.Fprintf(&b, "  mined today       %.2f tokens\n", s.TokensMinedToday)
		fmt.Fprintf(&b, "  mined total       %.2f tokens\n", s.TokensMinedTotal)
		fmt.Fprintf(&b, "  avg session       %.0f min\n", s.AvgSessionMinutes)
		fmt.Fprintf(&b, "  longest streak    %d days\n", s.LongestStreakDays)
		b.WriteString(styleMuted().Render("  generated " + s.GeneratedAt.Local().Format("15:04:05")))
		b.WriteString("\n\n")
	} else {
		b.WriteString(styleMuted().Render("no stats yet"))
		b.WriteString("\n\n")
	}

	if cfg := m.data.miningSettings; cfg != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Settings"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "  base rate         %.4f tokens/hour\n", cfg.BaseRatePerHour)
		fmt.Fprintf(&b, "  session length    %d h\n", cfg.SessionHours)
		fmt.Fprintf(&b, "  streak bonus      %.1f%% (max %d days)\n", cfg.StreakBonusPercent, cfg.MaxStreakDays)
		fmt.Fprintf(&b, "  referral bonus    %d tokens\n", cfg.ReferralBonusTokens)
		fmt.Fprintf(&b, "  daily cap         %d tokens\n", cfg.DailyCapTokens)
		if cfg.MaintenanceMode {
			b.WriteString("  " + styleWarn().Render("maintenance mode is ON"))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) viewBranding() string {
	cfg := m.data.branding
	if cfg == nil {
		return styleMuted().Render("no branding loaded")
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(cfg.PlatformName))
	if cfg.Tagline != "" {
		b.WriteString("  " + styleMuted().Render(cfg.Tagline))
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "  logo       %s\n", orDash(cfg.LogoURL))
	fmt.Fprintf(&b, "  favicon    %s\n", orDash(cfg.FaviconURL))
	fmt.Fprintf(&b, "  primary    %s\n", swatch(cfg.PrimaryColor))
	fmt.Fprintf(&b, "  secondary  %s\n", swatch(cfg.SecondaryColor))
	fmt.Fprintf(&b, "  support    %s\n", orDash(cfg.SupportEmail))
	return b.String()
}

func (m appModel) viewPayments() string {
	cfg := m.data.payments[m.paymentProvider]
	if cfg == nil {
		return styleMuted().Render("no payment config loaded")
	}
	var b strings.Builder
	state := styleError().Render("disabled")
	if cfg.Enabled {
		state = styleOK().Render("enabled")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		lipgloss.NewStyle().Bold(true).Render(string(cfg.Provider)), state,
		styleMuted().Render(cfg.Environment))
	fmt.Fprintf(&b, "  client id   %s\n", orDash(cfg.ClientIDMasked))
	fmt.Fprintf(&b, "  webhook     %s\n", orDash(cfg.WebhookURL))
	fmt.Fprintf(&b, "  purchases   $%.2f to $%.2f\n", cfg.MinPurchaseUSD, cfg.MaxPurchaseUSD)
	if len(cfg.SupportedCoins) > 0 {
		fmt.Fprintf(&b, "  coins       %s\n", strings.Join(cfg.SupportedCoins, ", "))
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return styleMuted().Render("-")
	}
	return s
}

// swatch shows a hex color with a colored block next to it.
func swatch(hex string) string {
	if strings.TrimSpace(hex) == "" {
		return styleMuted().Render("-")
	}
	if !hasColor() {
		return hex
	}
	block := lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("███")
	return hex + " " + block
}

func (m appModel) viewDialog() string {
	d := m.dialogs[m.active]
	switch d.kind {
	case dialogDeleting:
		return m.viewConfirmModal()
	case dialogPreviewing:
		return m.viewPreview()
	default:
		return m.viewFormModal()
	}
}

func (m appModel) viewFormModal() string {
	p := m.active
	d := m.dialogs[p]
	f := m.forms[p]

	title := "New " + strings.TrimSuffix(p.title(), "s")
	if d.kind == dialogEditing {
		title = "Edit " + strings.TrimSuffix(p.title(), "s")
	}
	if p == panelKYC {
		title = "Approve submission"
		if m.kycAction == "reject" {
			title = "Reject submission"
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
	b.WriteString("\n\n")

	for i, name := range m.fieldNames {
		label := name
		if i < len(m.inputs) {
			label = m.inputs[i].Placeholder
		}
		if i == m.bodyIdx {
			label = "body"
		}
		marker := "  "
		if m.focus == formFocusFields && i == m.fieldIdx {
			marker = styleOK().Render("> ")
		}
		fmt.Fprintf(&b, "%s%-22s", marker, label)
		if i == m.bodyIdx {
			b.WriteString("\n")
			b.WriteString(m.bodyInput.View())
		} else {
			b.WriteString(m.inputs[i].View())
		}
		if msg := f.FieldError(name); msg != "" {
			b.WriteString("\n  " + styleError().Render(msg))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	save := "Save"
	if m.pending {
		save = "Saving…"
	}
	b.WriteString(buttonStyle(m.focus == formFocusSave).Render(save))
	b.WriteString("  ")
	b.WriteString(buttonStyle(m.focus == formFocusCancel).Render("Cancel"))

	return modalStyle().Render(b.String())
}

func (m appModel) viewPreview() string {
	d := m.dialogs[m.active]
	width := min(m.width-10, 80)

	switch rec := d.record.(type) {
	case model.Article:
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(rec.Title))
		meta := rec.Category
		if len(rec.Tags) > 0 {
			meta += "  [" + strings.Join(rec.Tags, ", ") + "]"
		}
		b.WriteString("\n" + styleMuted().Render(meta) + "\n\n")
		b.WriteString(scrollLines(renderMarkdown(rec.Body, width), m.previewScroll, m.height-12))
		return modalStyle().Render(b.String())

	case model.KYCSubmission:
		var b strings.Builder
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(rec.FullName))
		b.WriteString("  " + styleMuted().Render(rec.UserEmail) + "\n\n")
		fmt.Fprintf(&b, "  status      %s\n", rec.Status)
		fmt.Fprintf(&b, "  country     %s\n", orDash(rec.Country))
		fmt.Fprintf(&b, "  document    %s  %s\n", rec.DocumentType, rec.DocumentURL)
		if rec.SelfieURL != "" {
			fmt.Fprintf(&b, "  selfie      %s\n", rec.SelfieURL)
		}
		if rec.AIRecommendation != "" {
			badge := string(rec.AIRecommendation)
			switch rec.AIRecommendation {
			case model.KYCRecommendApprove:
				badge = styleOK().Render(badge)
			case model.KYCRecommendReject:
				badge = styleError().Render(badge)
			default:
				badge = styleWarn().Render(badge)
			}
			fmt.Fprintf(&b, "\n  AI says     %s (%s confident)\n", badge, confidencePct(rec.AIConfidence))
			if rec.AINotes != "" {
				b.WriteString(scrollLines(renderMarkdown(rec.AINotes, width-4), 0, 8))
				b.WriteString("\n")
			}
		}
		if rec.ReviewNote != "" {
			fmt.Fprintf(&b, "\n  reviewed by %s: %s\n", rec.ReviewedBy, rec.ReviewNote)
		}
		return modalStyle().Render(b.String())
	}
	return ""
}

// scrollLines clips rendered text to a window starting at offset.
func scrollLines(s string, offset, height int) string {
	if height <= 0 {
		height = 10
	}
	lines := strings.Split(s, "\n")
	if offset >= len(lines) {
		offset = max(len(lines)-1, 0)
	}
	end := min(offset+height, len(lines))
	return strings.Join(lines[offset:end], "\n")
}

func (m appModel) viewFooter() string {
	help := m.panelHelp()
	line := styleMuted().Render(help)
	if m.flash != "" {
		st := styleOK()
		if m.flashIsErr {
			st = styleError()
		}
		line += "\n" + st.Render(m.flash)
	}
	return line
}

func (m appModel) panelHelp() string {
	if m.dialogs[m.active].isOpen() {
		switch m.dialogs[m.active].kind {
		case dialogDeleting:
			return "enter confirm · tab switch · esc cancel"
		case dialogPreviewing:
			return "↑/↓ scroll · esc close"
		default:
			return "tab next field · enter save · esc cancel"
		}
	}
	base := "tab panels · r refresh · q quit"
	switch m.active {
	case panelAds, panelPackages, panelEvents, panelSecrets:
		return "n new · e edit · d delete · / filter · " + base
	case panelKnowledge:
		return "n new · e edit · enter preview · d delete · " + base
	case panelKYC:
		return "a approve · x reject · enter detail · f status filter · " + base
	case panelUsers:
		return "e edit role/suspend · / filter · " + base
	case panelBranding, panelPayments, panelMining:
		extra := ""
		if m.active == panelPayments {
			extra = "p switch provider · "
		}
		return "e edit · " + extra + base
	default:
		return base
	}
}
