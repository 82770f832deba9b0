package domain

import "time"

// DonationStatus represents the lifecycle state of a donation request.
type DonationStatus string

const (
	DonationPending    DonationStatus = "pending"
	DonationInProgress DonationStatus = "inprogress"
	DonationDone       DonationStatus = "done"
	DonationCanceled   DonationStatus = "canceled"
)

// donationTransitions defines the allowed lifecycle transitions.
var donationTransitions = map[DonationStatus][]DonationStatus{
	DonationPending:    {DonationInProgress, DonationCanceled},
	DonationInProgress: {DonationDone, DonationCanceled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	for _, allowed := range donationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidDonationStatus reports whether s names a known donation status.
func ValidDonationStatus(s DonationStatus) bool {
	switch s {
	case DonationPending, DonationInProgress, DonationDone, DonationCanceled:
		return true
	}
	return false
}

// DonorInfo identifies the donor who responded to a request.
type DonorInfo struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// DonationRequest is a plea for blood posted by a requester and answered by
// at most one donor. Ownership is by requester email.
type DonationRequest struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	RequesterEmail string         `json:"requester_email" bson:"requester_email"`
	RequesterName  string         `json:"requester_name" bson:"requester_name"`
	RecipientName  string         `json:"recipient_name" bson:"recipient_name"`
	BloodGroup     string         `json:"blood_group" bson:"blood_group"`
	District       string         `json:"district" bson:"district"`
	Upazila        string         `json:"upazila,omitempty" bson:"upazila,omitempty"`
	Hospital       string         `json:"hospital" bson:"hospital"`
	Address        string         `json:"address,omitempty" bson:"address,omitempty"`
	DonationDate   string         `json:"donation_date" bson:"donation_date"`
	DonationTime   string         `json:"donation_time" bson:"donation_time"`
	Message        string         `json:"message,omitempty" bson:"message,omitempty"`
	Status         DonationStatus `json:"donation_status" bson:"donation_status"`
	DonorInfo      *DonorInfo     `json:"donor_info,omitempty" bson:"donor_info,omitempty"`
	CreatedAt      time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" bson:"updated_at"`
}
