package tui

import (
	"fmt"
	"strings"

	"mineboard/internal/model"
	"mineboard/internal/store"
)

type adItem struct{ ad model.Ad }

func (i adItem) FilterValue() string { return i.ad.Title + " " + i.ad.Placement }
func (i adItem) Title() string {
	status := string(i.ad.Status)
	switch i.ad.Status {
	case model.AdStatusActive:
		status = styleOK().Render(status)
	case model.AdStatusPaused:
		status = styleWarn().Render(status)
	}
	return fmt.Sprintf("%-30s %-8s %s  %d views / %d clicks",
		truncate(i.ad.Title, 30), i.ad.Placement, status, i.ad.Impressions, i.ad.Clicks)
}

type packageItem struct{ pkg model.TokenPackage }

func (i packageItem) FilterValue() string { return i.pkg.Name }
func (i packageItem) Title() string {
	flags := ""
	if i.pkg.Featured {
		flags += " ★"
	}
	if i.pkg.LimitedTimeOffer {
		flags += " ⏱"
	}
	if !i.pkg.Active {
		flags += styleMuted().Render(" (inactive)")
	}
	return fmt.Sprintf("%-24s %8d tokens  $%.2f  -%.0f%%%s",
		truncate(i.pkg.Name, 24), i.pkg.TokenAmount, i.pkg.PriceUSD, i.pkg.DiscountPercentage, flags)
}

type kycItem struct{ sub model.KYCSubmission }

func (i kycItem) FilterValue() string { return i.sub.FullName + " " + i.sub.UserEmail }
func (i kycItem) Title() string {
	rec := string(i.sub.AIRecommendation)
	if rec != "" && hasColor() {
		switch i.sub.AIRecommendation {
		case model.KYCRecommendApprove:
			rec = styleOK().Render("AI:" + rec)
		case model.KYCRecommendReject:
			rec = styleError().Render("AI:" + rec)
		default:
			rec = styleWarn().Render("AI:" + rec)
		}
	} else if rec != "" {
		rec = "AI:" + rec
	}
	return fmt.Sprintf("%-24s %-10s %-9s %s",
		truncate(i.sub.FullName, 24), i.sub.DocumentType, i.sub.Status, rec)
}

type userItem struct{ user model.User }

func (i userItem) FilterValue() string { return i.user.Email + " " + i.user.DisplayName }
func (i userItem) Title() string {
	suspended := ""
	if i.user.Suspended {
		suspended = styleError().Render(" suspended")
	}
	return fmt.Sprintf("%-32s %-9s %12.2f tok%s",
		truncate(i.user.Email, 32), i.user.Role, i.user.TokenBalance, suspended)
}

type eventItem struct{ ev model.PlatformEvent }

func (i eventItem) FilterValue() string { return i.ev.Title }
func (i eventItem) Title() string {
	pub := styleMuted().Render("draft")
	if i.ev.Published {
		pub = styleOK().Render("live")
	}
	window := ""
	if i.ev.StartsAt != nil {
		window = i.ev.StartsAt.String()
		if i.ev.EndsAt != nil {
			window += " → " + i.ev.EndsAt.String()
		}
	}
	return fmt.Sprintf("%-32s %s  %d tok  %s", truncate(i.ev.Title, 32), pub, i.ev.RewardTokens, window)
}

type secretItem struct{ sec model.Secret }

func (i secretItem) FilterValue() string { return i.sec.Key }
func (i secretItem) Title() string {
	return fmt.Sprintf("%-32s %-12s %s",
		truncate(i.sec.Key, 32), i.sec.ValueMasked, styleMuted().Render(i.sec.Description))
}

type articleItem struct{ art model.Article }

func (i articleItem) FilterValue() string {
	return i.art.Title + " " + i.art.Category + " " + strings.Join(i.art.Tags, " ")
}
func (i articleItem) Title() string {
	pub := styleMuted().Render("draft")
	if i.art.Published {
		pub = styleOK().Render("live")
	}
	return fmt.Sprintf("%-40s %-12s %s", truncate(i.art.Title, 40), i.art.Category, pub)
}

type auditItem struct{ entry store.AuditEntry }

func (i auditItem) FilterValue() string { return i.entry.Resource + " " + i.entry.Action }
func (i auditItem) Title() string {
	outcome := styleOK().Render(i.entry.Outcome)
	if i.entry.Outcome != "success" {
		outcome = styleError().Render(i.entry.Outcome)
	}
	return fmt.Sprintf("%s  %-8s %-16s %-12s %s",
		i.entry.At.Local().Format("01-02 15:04"), i.entry.Action, i.entry.Resource,
		truncate(i.entry.RecordID, 12), outcome)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
