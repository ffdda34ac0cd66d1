package subscription

import (
	"errors"
	"testing"
	"time"

	"tessera/internal/domain/asset"
	"tessera/internal/domain/plan"
	vo "tessera/internal/domain/subscription/valueobjects"
)

func testPlan(t *testing.T, standardQuota, premiumQuota int) *plan.Plan {
	t.Helper()
	p, err := plan.NewPlan("plan_test00000001", "pro", "Pro", asset.TierPremium, 30, standardQuota, premiumQuota, 1999)
	if err != nil {
		t.Fatalf("NewPlan() error = %v", err)
	}
	if err := p.SetID(1); err != nil {
		t.Fatalf("SetID() error = %v", err)
	}
	return p
}

func testSubscription(t *testing.T, standardQuota, premiumQuota int) *Subscription {
	t.Helper()
	sub, err := NewSubscription("sub_test00000001", 42, testPlan(t, standardQuota, premiumQuota), time.Now().UTC())
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}
	if err := sub.SetID(7); err != nil {
		t.Fatalf("SetID() error = %v", err)
	}
	return sub
}

func TestNewSubscription(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := testPlan(t, 10, 5)

	sub, err := NewSubscription("sub_abc", 42, p, start)
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}

	if sub.Status() != vo.StatusActive {
		t.Errorf("Status() = %v, want active", sub.Status())
	}
	if got, want := sub.EndDate(), start.AddDate(0, 0, 30); !got.Equal(want) {
		t.Errorf("EndDate() = %v, want %v", got, want)
	}
	if sub.StandardTotal() != 10 || sub.PremiumTotal() != 5 {
		t.Errorf("quota snapshot = %d/%d, want 10/5", sub.StandardTotal(), sub.PremiumTotal())
	}
	if sub.StandardUsed() != 0 || sub.PremiumUsed() != 0 {
		t.Errorf("used counters should start at zero")
	}
	if sub.AmountCents() != 1999 {
		t.Errorf("AmountCents() = %d, want 1999", sub.AmountCents())
	}
}

func TestNewSubscriptionValidation(t *testing.T) {
	p := testPlan(t, 1, 1)
	start := time.Now().UTC()

	if _, err := NewSubscription("", 42, p, start); err == nil {
		t.Error("expected error for missing SID")
	}
	if _, err := NewSubscription("sub_x", 0, p, start); err == nil {
		t.Error("expected error for missing user ID")
	}
	if _, err := NewSubscription("sub_x", 42, nil, start); err == nil {
		t.Error("expected error for missing plan")
	}
	if _, err := NewSubscription("sub_x", 42, p, time.Time{}); err == nil {
		t.Error("expected error for zero start date")
	}
}

func TestSelectDebitTier(t *testing.T) {
	tests := []struct {
		name          string
		standardQuota int
		standardUsed  int
		premiumQuota  int
		premiumUsed   int
		assetTier     asset.Tier
		want          asset.Tier
		wantErr       error
	}{
		{"standard asset from standard quota", 10, 0, 5, 0, asset.TierStandard, asset.TierStandard, nil},
		{"premium asset from premium quota", 10, 0, 5, 0, asset.TierPremium, asset.TierPremium, nil},
		{"standard falls back to premium", 10, 10, 5, 0, asset.TierStandard, asset.TierPremium, nil},
		{"standard exhausted on both", 10, 10, 5, 5, asset.TierStandard, "", ErrQuotaExhausted},
		{"premium never served from standard", 10, 0, 0, 0, asset.TierPremium, "", ErrQuotaExhausted},
		{"premium exhausted", 10, 0, 5, 5, asset.TierPremium, "", ErrQuotaExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := testSubscription(t, tt.standardQuota, tt.premiumQuota)
			now := time.Now().UTC()
			for i := 0; i < tt.standardUsed; i++ {
				if err := sub.Debit(asset.TierStandard, now); err != nil {
					t.Fatalf("Debit(standard) error = %v", err)
				}
			}
			for i := 0; i < tt.premiumUsed; i++ {
				if err := sub.Debit(asset.TierPremium, now); err != nil {
					t.Fatalf("Debit(premium) error = %v", err)
				}
			}

			got, err := sub.SelectDebitTier(tt.assetTier)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("SelectDebitTier() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("SelectDebitTier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDebitNeverExceedsTotal(t *testing.T) {
	sub := testSubscription(t, 3, 0)
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		if err := sub.Debit(asset.TierStandard, now); err != nil {
			t.Fatalf("Debit() #%d error = %v", i, err)
		}
	}
	if err := sub.Debit(asset.TierStandard, now); !errors.Is(err, ErrQuotaExhausted) {
		t.Fatalf("Debit() beyond total error = %v, want ErrQuotaExhausted", err)
	}
	if sub.StandardUsed() != 3 {
		t.Errorf("StandardUsed() = %d, want 3", sub.StandardUsed())
	}
	if sub.StandardUsed() > sub.StandardTotal() {
		t.Errorf("used %d exceeds total %d", sub.StandardUsed(), sub.StandardTotal())
	}
}

func TestDebitRejectedAfterEndDate(t *testing.T) {
	sub := testSubscription(t, 3, 0)
	past := sub.EndDate().Add(time.Second)

	if err := sub.Debit(asset.TierStandard, past); !errors.Is(err, ErrNotActive) {
		t.Fatalf("Debit() after end date error = %v, want ErrNotActive", err)
	}
}

func TestMarkAsExpired(t *testing.T) {
	sub := testSubscription(t, 1, 0)
	now := time.Now().UTC()

	if err := sub.MarkAsExpired(now); err != nil {
		t.Fatalf("MarkAsExpired() error = %v", err)
	}
	if sub.Status() != vo.StatusExpired {
		t.Fatalf("Status() = %v, want expired", sub.Status())
	}

	// Re-running the transition is a no-op, not an error.
	version := sub.Version()
	if err := sub.MarkAsExpired(now); err != nil {
		t.Fatalf("MarkAsExpired() second call error = %v", err)
	}
	if sub.Version() != version {
		t.Errorf("Version() bumped on no-op transition")
	}
}

func TestMarkAsExpiredFromCancelled(t *testing.T) {
	sub := testSubscription(t, 1, 0)
	now := time.Now().UTC()

	if err := sub.Cancel("user request", now); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if err := sub.MarkAsExpired(now); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("MarkAsExpired() from cancelled error = %v, want ErrInvalidTransition", err)
	}
}

func TestCancel(t *testing.T) {
	sub := testSubscription(t, 1, 0)
	now := time.Now().UTC()

	if err := sub.Cancel("", now); err == nil {
		t.Error("expected error for empty cancel reason")
	}

	if err := sub.Cancel("user request", now); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if sub.Status() != vo.StatusCancelled {
		t.Fatalf("Status() = %v, want cancelled", sub.Status())
	}
	if sub.CancelledAt() == nil || sub.CancelReason() == nil {
		t.Fatal("expected cancelled_at and cancel_reason to be set")
	}

	// Idempotent.
	if err := sub.Cancel("again", now); err != nil {
		t.Fatalf("Cancel() second call error = %v", err)
	}
	if *sub.CancelReason() != "user request" {
		t.Errorf("CancelReason() overwritten on no-op cancel")
	}
}

func TestEffectiveStatus(t *testing.T) {
	sub := testSubscription(t, 1, 0)

	before := sub.EndDate().Add(-time.Hour)
	if got := sub.EffectiveStatus(before); got != vo.StatusActive {
		t.Errorf("EffectiveStatus(before end) = %v, want active", got)
	}

	// Past the end date the record reads as expired even though the status
	// field has not been swept yet.
	after := sub.EndDate().Add(time.Second)
	if got := sub.EffectiveStatus(after); got != vo.StatusExpired {
		t.Errorf("EffectiveStatus(after end) = %v, want expired", got)
	}
	if sub.Status() != vo.StatusActive {
		t.Errorf("EffectiveStatus must not mutate the persisted status")
	}
}

func TestReconstructSubscriptionRejectsCorruptCounters(t *testing.T) {
	now := time.Now().UTC()
	_, err := ReconstructSubscription(
		1, "sub_x", 42, 1, "Pro", asset.TierPremium,
		vo.StatusActive, now, now.AddDate(0, 0, 30),
		10, 11, 5, 0, 1999, nil, nil, 1, now, now,
	)
	if err == nil {
		t.Error("expected error for used > total")
	}

	_, err = ReconstructSubscription(
		1, "sub_x", 42, 1, "Pro", asset.TierPremium,
		vo.StatusActive, now, now.AddDate(0, 0, 30),
		10, -1, 5, 0, 1999, nil, nil, 1, now, now,
	)
	if err == nil {
		t.Error("expected error for negative used")
	}
}
