package tui

import (
	"testing"

	"mineboard/internal/form"
	"mineboard/internal/model"
)

func TestSeedPackage_EveryFieldDefined(t *testing.T) {
	pkg := model.TokenPackage{
		ID:          "pkg-1",
		Name:        "Starter",
		TokenAmount: 100,
		PriceUSD:    9.99,
		Active:      true,
	}
	f := form.New(packageSchema())
	f.Reset(seedPackage(pkg))

	// Optional fields that were zero in the record must still come back as
	// concrete strings, never missing.
	for _, name := range []string{"discountPercentage", "bonusTokens", "limitedTimeOffer", "offerEndsAt", "featured"} {
		if _, ok := f.Values()[name]; !ok {
			t.Errorf("field %q undefined after seeding", name)
		}
	}
	if f.Value("limitedTimeOffer") != "false" {
		t.Errorf("limitedTimeOffer = %q, want false", f.Value("limitedTimeOffer"))
	}
	if f.Value("priceUsd") != "9.99" {
		t.Errorf("priceUsd = %q", f.Value("priceUsd"))
	}
}

func TestSeedSecret_ValueStartsBlank(t *testing.T) {
	sec := model.Secret{Key: "SMTP_PASSWORD", ValueMasked: "hu•••••", Description: "mail relay"}
	f := form.New(secretSchema())
	f.Reset(seedSecret(sec))

	if f.Value("value") != "" {
		t.Fatalf("secret value must never seed from the masked server value, got %q", f.Value("value"))
	}
	if f.Value("key") != "SMTP_PASSWORD" || f.Value("description") != "mail relay" {
		t.Fatalf("seed mismatch: %+v", f.Values())
	}
}

func TestPackageSchema_OfferEndsAtRequiredWhenLimited(t *testing.T) {
	f := form.New(packageSchema())
	f.SetField("name", "Flash sale")
	f.SetField("tokenAmount", "500")
	f.SetField("priceUsd", "19.99")
	f.SetField("limitedTimeOffer", "true")

	if f.Validate() {
		t.Fatalf("limited offer without end date should fail validation")
	}
	if f.FieldError("offerEndsAt") == "" {
		t.Fatalf("expected offerEndsAt error, got %v", f.Errors())
	}

	f.SetField("offerEndsAt", "2026-12-31")
	if !f.Validate() {
		t.Fatalf("unexpected errors: %v", f.Errors())
	}
}

func TestAdSchema_RejectsBadURLAndStatus(t *testing.T) {
	f := form.New(adSchema())
	f.SetField("title", "Promo")
	f.SetField("targetUrl", "not-a-url")
	f.SetField("status", "running")

	if f.Validate() {
		t.Fatalf("expected validation failure")
	}
	if f.FieldError("targetUrl") == "" || f.FieldError("status") == "" {
		t.Fatalf("missing errors: %v", f.Errors())
	}
}

func TestBrandingSchema_HexColors(t *testing.T) {
	f := form.New(brandingSchema())
	f.SetField("platformName", "MinePlatform")
	f.SetField("primaryColor", "#12ab3C")
	if !f.Validate() {
		t.Fatalf("valid hex rejected: %v", f.Errors())
	}
	f.SetField("primaryColor", "red")
	if f.Validate() {
		t.Fatalf("named color should be rejected")
	}
}

func TestPanelSchema_CoversEveryEditablePanel(t *testing.T) {
	for _, p := range panelOrder {
		if p == panelAudit {
			continue
		}
		s := panelSchema(p)
		if len(s.Fields()) == 0 {
			t.Errorf("panel %s has an empty schema", p)
		}
	}
}

func TestParseTags(t *testing.T) {
	got := parseTags(" mining, faq,,rewards ")
	want := []string{"mining", "faq", "rewards"}
	if len(got) != len(want) {
		t.Fatalf("parseTags = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("parseTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestConfidencePct(t *testing.T) {
	if got := confidencePct(0.874); got != "87%" {
		t.Errorf("confidencePct(0.874) = %q", got)
	}
	if got := confidencePct(1); got != "100%" {
		t.Errorf("confidencePct(1) = %q", got)
	}
}
