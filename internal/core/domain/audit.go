package domain

import "time"

// Audit actions recorded for administrative decisions on accounts.
const (
	AuditApproveMerchant = "approve_merchant"
	AuditRejectMerchant  = "reject_merchant"
	AuditSetRole         = "set_role"
	AuditSetStatus       = "set_status"
	AuditDeleteUser      = "delete_user"
)

// AuditEntry is an immutable record explaining why an account's grants
// changed: who acted, on whom, and what was decided.
type AuditEntry struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	ActorEmail string    `json:"actor_email" bson:"actor_email"`
	Subject    string    `json:"subject" bson:"subject"`
	Action     string    `json:"action" bson:"action"`
	Detail     string    `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}
