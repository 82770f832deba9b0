package handler

type addUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	BloodGroup  string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District    string `json:"district" validate:"omitempty,max=100"`
	Upazila     string `json:"upazila" validate:"omitempty,max=100"`
	ShopName    string `json:"shop_name" validate:"omitempty,max=200"`
	ShopAddress string `json:"shop_address" validate:"omitempty,max=300"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin merchant customer"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active pending blocked"`
}

type createDonationRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,min=2,max=100"`
	BloodGroup    string `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	District      string `json:"district" validate:"required,max=100"`
	Upazila       string `json:"upazila" validate:"omitempty,max=100"`
	Hospital      string `json:"hospital" validate:"required,max=200"`
	Address       string `json:"address" validate:"omitempty,max=300"`
	DonationDate  string `json:"donation_date" validate:"required"`
	DonationTime  string `json:"donation_time" validate:"required"`
	Message       string `json:"message" validate:"omitempty,max=1000"`
}

type donationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending inprogress done canceled"`
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	Category    string  `json:"category" validate:"omitempty,max=100"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int64   `json:"quantity" validate:"gte=0"`
}

type editProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Category    *string  `json:"category" validate:"omitempty,max=100"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
}

type updateStockRequest struct {
	Quantity int64 `json:"quantity" validate:"gte=0"`
}

type createBlogRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=300"`
	Thumbnail string `json:"thumbnail" validate:"omitempty,url"`
	Content   string `json:"content" validate:"required"`
}

type paymentIntentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

type recordFundingRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	TransactionID string  `json:"transaction_id" validate:"omitempty,max=200"`
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=2000"`
}

// pageEnvelope is the shared pagination wrapper for list responses.
type pageEnvelope struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type messageResponse struct {
	Message string `json:"message"`
}
