package domain

import (
	"strings"
	"time"
)

// Role is an account's authorization grant.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMerchant Role = "merchant"
	RoleCustomer Role = "customer"
)

const (
	StatusActive  = "active"
	StatusPending = "pending"
	StatusBlocked = "blocked"
)

// Role-request lifecycle: nil → pending → approved|rejected. A resolved
// request may be replaced by a fresh pending one; a pending request may not.
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// RoleRequest is the approval envelope for a role upgrade. It is kept
// separate from the authoritative Role field so a rejected application
// leaves the user's grants untouched and the decision stays auditable.
type RoleRequest struct {
	Type        Role      `json:"type" bson:"type"`
	Status      string    `json:"status" bson:"status"`
	RequestedAt time.Time `json:"requested_at" bson:"requested_at"`
}

// User models an account: identity, authorization grants, and the
// profile fields of both application variants.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Name        string       `json:"name"`
	Role        Role         `json:"role"`
	Status      string       `json:"status"`
	RoleRequest *RoleRequest `json:"role_request,omitempty"`
	LoginCount  int64        `json:"login_count"`

	// Donation-platform profile.
	BloodGroup string `json:"blood_group,omitempty"`
	District   string `json:"district,omitempty"`
	Upazila    string `json:"upazila,omitempty"`

	// Marketplace profile.
	ShopName    string `json:"shop_name,omitempty"`
	ShopAddress string `json:"shop_address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the account may act on protected resources.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// HasPendingRequest reports whether a role upgrade is awaiting a decision.
func (u *User) HasPendingRequest() bool {
	return u.RoleRequest != nil && u.RoleRequest.Status == RequestPending
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role Role) bool {
	return role == RoleAdmin || role == RoleMerchant || role == RoleCustomer
}

// ValidStatus reports whether status is one of the known account statuses.
func ValidStatus(status string) bool {
	return status == StatusActive || status == StatusPending || status == StatusBlocked
}

// NormalizeEmail lower-cases and trims an email so it can serve as the
// unique account key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeBloodGroup decodes the trailing Rh marker used by the search UI:
// the last character is stripped and mapped to "+" when it is the sentinel
// "p", otherwise "-". "Ap" → "A+", "Om" → "O-", "ABp" → "AB+".
func NormalizeBloodGroup(encoded string) string {
	if len(encoded) < 2 {
		return strings.ToUpper(encoded)
	}
	group := strings.ToUpper(encoded[:len(encoded)-1])
	if encoded[len(encoded)-1] == 'p' {
		return group + "+"
	}
	return group + "-"
}
