package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mineboard/internal/form"
	"mineboard/internal/model"
)

// One schema per panel dialog. Defaults and optional-field fallbacks live
// here, applied by Form.Reset, not per call site.

var (
	hexColorRe  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	urlRe       = regexp.MustCompile(`^https?://\S+$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	secretKeyRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
)

func boolStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func intStr(n int64) string { return strconv.FormatInt(n, 10) }

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func dtStr(dt *model.DateTime) string {
	if dt == nil {
		return ""
	}
	return dt.String()
}

func adSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "title", Label: "title", Required: true, MinLen: 3, MaxLen: 120},
		form.Field{Name: "description", Label: "description", MaxLen: 500},
		form.Field{Name: "imageUrl", Label: "image URL", Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "targetUrl", Label: "target URL", Required: true, Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "placement", Label: "placement", Default: "home", Enum: []string{"home", "mining", "wallet", "store"}},
		form.Field{Name: "status", Label: "status", Default: string(model.AdStatusDraft),
			Enum: []string{"draft", "active", "paused", "archived"}},
		form.Field{Name: "startsAt", Label: "start date"},
		form.Field{Name: "endsAt", Label: "end date"},
	)
}

// seedAd maps a record onto form values field by field; every optional field
// gets a defined fallback so nothing is ever undefined.
func seedAd(ad model.Ad) form.Values {
	return form.Values{
		"title":       ad.Title,
		"description": ad.Description,
		"imageUrl":    ad.ImageURL,
		"targetUrl":   ad.TargetURL,
		"placement":   ad.Placement,
		"status":      string(ad.Status),
		"startsAt":    dtStr(ad.StartsAt),
		"endsAt":      dtStr(ad.EndsAt),
	}
}

func packageSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "name", Label: "name", Required: true, MinLen: 3, MaxLen: 60},
		form.Field{Name: "description", Label: "description", MaxLen: 300},
		form.Field{Name: "tokenAmount", Label: "token amount", Required: true, Numeric: true, Min: form.FloatPtr(1)},
		form.Field{Name: "priceUsd", Label: "price (USD)", Required: true, Numeric: true, Min: form.FloatPtr(0)},
		form.Field{Name: "discountPercentage", Label: "discount %", Numeric: true,
			Min: form.FloatPtr(0), Max: form.FloatPtr(100), Default: "0"},
		form.Field{Name: "bonusTokens", Label: "bonus tokens", Numeric: true, Min: form.FloatPtr(0), Default: "0"},
		form.Field{Name: "limitedTimeOffer", Label: "limited-time offer", Default: "false"},
		form.Field{Name: "offerEndsAt", Label: "offer end date",
			RequiredWhen: func(v form.Values) bool {
				return strings.EqualFold(strings.TrimSpace(v["limitedTimeOffer"]), "true")
			}},
		form.Field{Name: "featured", Label: "featured", Default: "false"},
		form.Field{Name: "active", Label: "active", Default: "true"},
	)
}

func seedPackage(p model.TokenPackage) form.Values {
	return form.Values{
		"name":               p.Name,
		"description":        p.Description,
		"tokenAmount":        intStr(p.TokenAmount),
		"priceUsd":           floatStr(p.PriceUSD),
		"discountPercentage": floatStr(p.DiscountPercentage),
		"bonusTokens":        intStr(p.BonusTokens),
		"limitedTimeOffer":   boolStr(p.LimitedTimeOffer),
		"offerEndsAt":        dtStr(p.OfferEndsAt),
		"featured":           boolStr(p.Featured),
		"active":             boolStr(p.Active),
	}
}

func eventSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "title", Label: "title", Required: true, MinLen: 3, MaxLen: 120},
		form.Field{Name: "description", Label: "description", MaxLen: 1000},
		form.Field{Name: "imageUrl", Label: "image URL", Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "rewardTokens", Label: "reward tokens", Numeric: true, Min: form.FloatPtr(0), Default: "0"},
		form.Field{Name: "startsAt", Label: "start date"},
		form.Field{Name: "endsAt", Label: "end date",
			RequiredWhen: func(v form.Values) bool {
				return strings.TrimSpace(v["startsAt"]) != ""
			}},
		form.Field{Name: "published", Label: "published", Default: "false"},
	)
}

func seedEvent(ev model.PlatformEvent) form.Values {
	return form.Values{
		"title":        ev.Title,
		"description":  ev.Description,
		"imageUrl":     ev.ImageURL,
		"rewardTokens": intStr(ev.RewardTokens),
		"startsAt":     dtStr(ev.StartsAt),
		"endsAt":       dtStr(ev.EndsAt),
		"published":    boolStr(ev.Published),
	}
}

func secretSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "key", Label: "key", Required: true, Pattern: secretKeyRe,
			PatternMsg: "must be UPPER_SNAKE_CASE"},
		form.Field{Name: "value", Label: "value", Required: true, MinLen: 1},
		form.Field{Name: "description", Label: "description", MaxLen: 200},
	)
}

func seedSecret(s model.Secret) form.Values {
	// Value is write-only; editing starts blank and keeps the old value
	// server-side unless a new one is submitted.
	return form.Values{
		"key":         s.Key,
		"value":       "",
		"description": s.Description,
	}
}

func kycNoteSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "note", Label: "review note", MaxLen: 500},
	)
}

func userSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "role", Label: "role", Required: true,
			Enum: []string{"member", "moderator", "admin"}},
		form.Field{Name: "suspended", Label: "suspended", Default: "false"},
	)
}

func seedUser(u model.User) form.Values {
	return form.Values{
		"role":      string(u.Role),
		"suspended": boolStr(u.Suspended),
	}
}

func brandingSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "platformName", Label: "platform name", Required: true, MinLen: 2, MaxLen: 60},
		form.Field{Name: "tagline", Label: "tagline", MaxLen: 140},
		form.Field{Name: "logoUrl", Label: "logo URL", Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "faviconUrl", Label: "favicon URL", Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "primaryColor", Label: "primary color", Pattern: hexColorRe,
			PatternMsg: "must be a hex color like #1a2b3c"},
		form.Field{Name: "secondaryColor", Label: "secondary color", Pattern: hexColorRe,
			PatternMsg: "must be a hex color like #1a2b3c"},
		form.Field{Name: "supportEmail", Label: "support email", Pattern: emailRe,
			PatternMsg: "must be an email address"},
	)
}

func seedBranding(b model.BrandingConfig) form.Values {
	return form.Values{
		"platformName":   b.PlatformName,
		"tagline":        b.Tagline,
		"logoUrl":        b.LogoURL,
		"faviconUrl":     b.FaviconURL,
		"primaryColor":   b.PrimaryColor,
		"secondaryColor": b.SecondaryColor,
		"supportEmail":   b.SupportEmail,
	}
}

func paymentSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "enabled", Label: "enabled", Default: "false"},
		form.Field{Name: "environment", Label: "environment", Required: true,
			Default: "sandbox", Enum: []string{"sandbox", "live"}},
		form.Field{Name: "clientId", Label: "client id"},
		form.Field{Name: "clientSecret", Label: "client secret"},
		form.Field{Name: "webhookUrl", Label: "webhook URL", Pattern: urlRe, PatternMsg: "must be an http(s) URL"},
		form.Field{Name: "minPurchaseUsd", Label: "min purchase (USD)", Numeric: true,
			Min: form.FloatPtr(0), Default: "1"},
		form.Field{Name: "maxPurchaseUsd", Label: "max purchase (USD)", Numeric: true,
			Min: form.FloatPtr(0), Default: "10000"},
	)
}

func seedPayment(p model.PaymentGatewayConfig) form.Values {
	return form.Values{
		"enabled":     boolStr(p.Enabled),
		"environment": p.Environment,
		// Credentials are write-only; blank keeps the stored value.
		"clientId":       "",
		"clientSecret":   "",
		"webhookUrl":     p.WebhookURL,
		"minPurchaseUsd": floatStr(p.MinPurchaseUSD),
		"maxPurchaseUsd": floatStr(p.MaxPurchaseUSD),
	}
}

func miningSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "baseRatePerHour", Label: "base rate/hour", Required: true, Numeric: true,
			Min: form.FloatPtr(0)},
		form.Field{Name: "sessionHours", Label: "session hours", Required: true, Numeric: true,
			Min: form.FloatPtr(1), Max: form.FloatPtr(48)},
		form.Field{Name: "streakBonusPercent", Label: "streak bonus %", Numeric: true,
			Min: form.FloatPtr(0), Max: form.FloatPtr(100), Default: "0"},
		form.Field{Name: "maxStreakDays", Label: "max streak days", Numeric: true,
			Min: form.FloatPtr(0), Default: "0"},
		form.Field{Name: "referralBonusTokens", Label: "referral bonus tokens", Numeric: true,
			Min: form.FloatPtr(0), Default: "0"},
		form.Field{Name: "dailyCapTokens", Label: "daily cap tokens", Numeric: true,
			Min: form.FloatPtr(0), Default: "0"},
		form.Field{Name: "maintenanceMode", Label: "maintenance mode", Default: "false"},
	)
}

func seedMining(m model.MiningSettings) form.Values {
	return form.Values{
		"baseRatePerHour":     floatStr(m.BaseRatePerHour),
		"sessionHours":        intStr(int64(m.SessionHours)),
		"streakBonusPercent":  floatStr(m.StreakBonusPercent),
		"maxStreakDays":       intStr(int64(m.MaxStreakDays)),
		"referralBonusTokens": intStr(m.ReferralBonusTokens),
		"dailyCapTokens":      intStr(m.DailyCapTokens),
		"maintenanceMode":     boolStr(m.MaintenanceMode),
	}
}

func articleSchema() form.Schema {
	return form.NewSchema(
		form.Field{Name: "title", Label: "title", Required: true, MinLen: 3, MaxLen: 160},
		form.Field{Name: "category", Label: "category", Default: "general"},
		form.Field{Name: "body", Label: "body", Required: true, MinLen: 10},
		form.Field{Name: "tags", Label: "tags"},
		form.Field{Name: "published", Label: "published", Default: "false"},
	)
}

func seedArticle(a model.Article) form.Values {
	return form.Values{
		"title":     a.Title,
		"category":  a.Category,
		"body":      a.Body,
		"tags":      strings.Join(a.Tags, ", "),
		"published": boolStr(a.Published),
	}
}

func panelSchema(p panel) form.Schema {
	switch p {
	case panelAds:
		return adSchema()
	case panelPackages:
		return packageSchema()
	case panelKYC:
		return kycNoteSchema()
	case panelUsers:
		return userSchema()
	case panelEvents:
		return eventSchema()
	case panelSecrets:
		return secretSchema()
	case panelMining:
		return miningSchema()
	case panelBranding:
		return brandingSchema()
	case panelPayments:
		return paymentSchema()
	case panelKnowledge:
		return articleSchema()
	default:
		return form.NewSchema()
	}
}

func parseTags(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func confidencePct(f float64) string {
	return fmt.Sprintf("%d%%", int(f*100+0.5))
}
