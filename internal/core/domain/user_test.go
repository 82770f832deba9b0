package domain

import "testing"

func TestNormalizeBloodGroup(t *testing.T) {
	cases := []struct {
		encoded string
		want    string
	}{
		{"Ap", "A+"},
		{"Am", "A-"},
		{"Bp", "B+"},
		{"Om", "O-"},
		{"ABp", "AB+"},
		{"ABm", "AB-"},
		{"abp", "AB+"},
		{"O", "O"}, // too short to carry a marker
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeBloodGroup(tc.encoded); got != tc.want {
			t.Errorf("NormalizeBloodGroup(%q) = %q, want %q", tc.encoded, got, tc.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("got %q", got)
	}
}

func TestHasPendingRequest(t *testing.T) {
	u := &User{}
	if u.HasPendingRequest() {
		t.Fatalf("nil request should not be pending")
	}

	u.RoleRequest = &RoleRequest{Type: RoleMerchant, Status: RequestPending}
	if !u.HasPendingRequest() {
		t.Fatalf("pending request not detected")
	}

	u.RoleRequest.Status = RequestRejected
	if u.HasPendingRequest() {
		t.Fatalf("resolved request should not count as pending")
	}
}

func TestValidRoleAndStatus(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleMerchant, RoleCustomer} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false", role)
		}
	}
	if ValidRole("superuser") {
		t.Errorf("unknown role accepted")
	}
	if ValidStatus("frozen") {
		t.Errorf("unknown status accepted")
	}
}
