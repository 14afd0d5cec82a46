package tui

import (
	"testing"

	"mineboard/internal/api"
	"mineboard/internal/model"
	"mineboard/internal/query"
)

// Panels and mutations must agree on key spelling; a drifted key means a
// mutation invalidates nothing and the panel keeps stale data.
func TestQueryKeys_PanelsAndMutationsAgree(t *testing.T) {
	if adsKey() != query.NewKey(api.PathAds) {
		t.Errorf("adsKey drifted from the resource path")
	}
	if miningStatsKey() == miningSettingsKey() {
		t.Errorf("stats and settings must be distinct cache entries")
	}
	if paymentKey(model.PaymentProviderPayPal) == paymentKey(model.PaymentProviderFlutterwave) {
		t.Errorf("per-provider payment keys must differ")
	}
}

func TestKYCKeys_FilterVariantsAreDistinct(t *testing.T) {
	all := kycKeysAll()
	if len(all) != 4 {
		t.Fatalf("kycKeysAll() = %d keys, want 4 (all + three statuses)", len(all))
	}
	seen := map[query.Key]bool{}
	for _, k := range all {
		if seen[k] {
			t.Fatalf("duplicate key %v", k)
		}
		seen[k] = true
	}
	if !seen[kycKey(model.KYCStatusPending)] || !seen[kycKey("")] {
		t.Fatalf("kycKeysAll missing a filter variant")
	}
}
