package core

import (
	"strings"
	"testing"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		net  int64
		want Tier
	}{
		{-1, TierDeficit},
		{-5_000_000, TierDeficit},
		{0, TierZero},
		{1, TierFreeDeposit},
		{999_999, TierFreeDeposit},
		{1_000_000, TierStandard},
		{2_999_999, TierStandard},
		{3_000_000, TierPremium},
		{50_000_000, TierPremium},
	}
	for _, tc := range cases {
		if got := TierFor(tc.net); got != tc.want {
			t.Errorf("TierFor(%d) = %v, want %v", tc.net, got, tc.want)
		}
		if got := Recommend(tc.net).Tier; got != tc.want {
			t.Errorf("Recommend(%d).Tier = %v, want %v", tc.net, got, tc.want)
		}
	}
}

func TestRecommendPayload(t *testing.T) {
	rec := Recommend(1_000_000)
	if rec.MaxTermYears != 3 {
		t.Errorf("MaxTermYears = %d", rec.MaxTermYears)
	}
	if rec.AnnualRate.String() != "4.2" {
		t.Errorf("AnnualRate = %s", rec.AnnualRate)
	}
	// 12,000,000 principal + 1,000,000 * 4.2% * 78/12
	if rec.ProjectedMaturity != 12_273_000 {
		t.Errorf("ProjectedMaturity = %d", rec.ProjectedMaturity)
	}
	if !strings.Contains(rec.Guidance, "1,000,000원") {
		t.Errorf("guidance missing formatted amount: %q", rec.Guidance)
	}

	premium := Recommend(3_000_000)
	if premium.MaxTermYears != 5 || premium.AnnualRate.String() != "5.5" {
		t.Errorf("premium payload = %+v", premium)
	}
}

func TestRecommendNoSavingForNonPositive(t *testing.T) {
	for _, net := range []int64{-10, 0} {
		rec := Recommend(net)
		if rec.ProjectedMaturity != 0 {
			t.Errorf("Recommend(%d).ProjectedMaturity = %d", net, rec.ProjectedMaturity)
		}
		if !rec.AnnualRate.IsZero() {
			t.Errorf("Recommend(%d).AnnualRate = %s", net, rec.AnnualRate)
		}
		if rec.Title == "" || rec.Guidance == "" {
			t.Errorf("Recommend(%d) missing text", net)
		}
	}
}

func TestTierString(t *testing.T) {
	want := []string{"deficit", "zero", "free_deposit", "standard", "premium"}
	for i, s := range want {
		if Tier(i).String() != s {
			t.Errorf("Tier(%d) = %q, want %q", i, Tier(i).String(), s)
		}
	}
}
