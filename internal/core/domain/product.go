package domain

import "time"

// Product is a marketplace listing owned by the merchant who created it.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int64     `json:"quantity" bson:"quantity"`
	InStock     bool      `json:"in_stock" bson:"in_stock"`
	OwnerEmail  string    `json:"owner_email" bson:"owner_email"`
	ShopName    string    `json:"shop_name,omitempty" bson:"shop_name,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// OwnedBy reports whether email is the listing owner. Callers pass a
// normalized email.
func (p *Product) OwnedBy(email string) bool {
	return p.OwnerEmail == email
}
