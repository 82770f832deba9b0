package domain

import "testing"

func TestDonationTransitions(t *testing.T) {
	cases := []struct {
		from, to DonationStatus
		allowed  bool
	}{
		{DonationPending, DonationInProgress, true},
		{DonationPending, DonationCanceled, true},
		{DonationPending, DonationDone, false},
		{DonationInProgress, DonationDone, true},
		{DonationInProgress, DonationCanceled, true},
		{DonationInProgress, DonationPending, false},
		{DonationDone, DonationCanceled, false},
		{DonationCanceled, DonationPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s → %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestValidDonationStatus(t *testing.T) {
	if !ValidDonationStatus(DonationInProgress) {
		t.Fatalf("inprogress should be valid")
	}
	if ValidDonationStatus("shipped") {
		t.Fatalf("unknown status accepted")
	}
}
