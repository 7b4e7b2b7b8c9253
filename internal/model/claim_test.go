package model

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		role    string
		current string
		next    string
		want    bool
	}{
		{"restaurant approves pending", RoleRestaurant, ClaimPending, ClaimApproved, true},
		{"restaurant rejects pending", RoleRestaurant, ClaimPending, ClaimRejected, true},
		{"restaurant completes pending", RoleRestaurant, ClaimPending, ClaimCompleted, false},
		{"restaurant cancels pending", RoleRestaurant, ClaimPending, ClaimCancelled, false},
		{"restaurant re-approves approved", RoleRestaurant, ClaimApproved, ClaimApproved, false},
		{"restaurant rejects approved", RoleRestaurant, ClaimApproved, ClaimRejected, false},

		{"organization completes approved", RoleOrganization, ClaimApproved, ClaimCompleted, true},
		{"organization cancels approved", RoleOrganization, ClaimApproved, ClaimCancelled, true},
		{"organization completes pending", RoleOrganization, ClaimPending, ClaimCompleted, false},
		{"organization approves pending", RoleOrganization, ClaimPending, ClaimApproved, false},
		{"organization cancels pending", RoleOrganization, ClaimPending, ClaimCancelled, false},

		{"volunteer approves pending", RoleVolunteer, ClaimPending, ClaimApproved, false},
		{"volunteer completes approved", RoleVolunteer, ClaimApproved, ClaimCompleted, false},
		{"unknown role", "admin", ClaimPending, ClaimApproved, false},

		{"rejected is terminal", RoleRestaurant, ClaimRejected, ClaimApproved, false},
		{"completed is terminal", RoleOrganization, ClaimCompleted, ClaimCancelled, false},
		{"cancelled is terminal", RoleOrganization, ClaimCancelled, ClaimCompleted, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.role, tc.current, tc.next); got != tc.want {
				t.Fatalf("CanTransition(%q, %q, %q) = %v, want %v", tc.role, tc.current, tc.next, got, tc.want)
			}
		})
	}
}

// A pending claim must never reach completed directly, whoever asks.
func TestPendingNeverJumpsToCompleted(t *testing.T) {
	for _, role := range []string{RoleRestaurant, RoleOrganization, RoleVolunteer, ""} {
		if CanTransition(role, ClaimPending, ClaimCompleted) {
			t.Fatalf("role %q may move pending straight to completed", role)
		}
	}
}

func TestListingStatusAfter(t *testing.T) {
	if got := ListingStatusAfter(ClaimApproved); got != ListingClaimed {
		t.Fatalf("approval cascade = %q, want %q", got, ListingClaimed)
	}
	if got := ListingStatusAfter(ClaimCompleted); got != ListingCompleted {
		t.Fatalf("completion cascade = %q, want %q", got, ListingCompleted)
	}
	for _, s := range []string{ClaimPending, ClaimRejected, ClaimCancelled} {
		if got := ListingStatusAfter(s); got != "" {
			t.Fatalf("status %q should not cascade, got %q", s, got)
		}
	}
}

func TestValidClaimStatus(t *testing.T) {
	for _, s := range []string{ClaimPending, ClaimApproved, ClaimRejected, ClaimCompleted, ClaimCancelled} {
		if !ValidClaimStatus(s) {
			t.Fatalf("%q should be a valid status", s)
		}
	}
	for _, s := range []string{"", "PENDING", "done", "open"} {
		if ValidClaimStatus(s) {
			t.Fatalf("%q should not be a valid status", s)
		}
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleRestaurant, RoleOrganization, RoleVolunteer} {
		if !ValidRole(r) {
			t.Fatalf("%q should be a valid role", r)
		}
	}
	for _, r := range []string{"", "admin", "Restaurant"} {
		if ValidRole(r) {
			t.Fatalf("%q should not be a valid role", r)
		}
	}
}
