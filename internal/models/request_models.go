package models

import "agrisoil-backend/internal/rules"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required,min=3,max=100"`
	Password    string `json:"password" binding:"required,min=6,max=72"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=100"`
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=72"`
}

type GoogleAuthRequest struct {
	// Either an ID token credential from Google Sign-In or a bare
	// access token.
	Token string `json:"token" binding:"required"`
}

type TwitterAuthRequest struct {
	Code         string `json:"code" binding:"required"`
	CodeVerifier string `json:"code_verifier" binding:"required"`
	RedirectURI  string `json:"redirect_uri"`
}

// PredictionInput carries one set of field readings. The binding ranges
// match the envelope the classifier models were trained on.
type PredictionInput struct {
	Nitrogen    float64 `json:"nitrogen" binding:"min=0,max=300"`
	Phosphorus  float64 `json:"phosphorus" binding:"required,min=5,max=300"`
	Potassium   float64 `json:"potassium" binding:"required,min=5,max=400"`
	Temperature float64 `json:"temperature" binding:"required,min=8,max=55"`
	Humidity    float64 `json:"humidity" binding:"required,min=14,max=100"`
	PH          float64 `json:"ph" binding:"required,min=3.5,max=10.0"`
	Rainfall    float64 `json:"rainfall" binding:"required,min=20,max=3000"`
}

func (p PredictionInput) ToMeasurement() rules.Measurement {
	return rules.Measurement{
		Nitrogen:    p.Nitrogen,
		Phosphorus:  p.Phosphorus,
		Potassium:   p.Potassium,
		Temperature: p.Temperature,
		Humidity:    p.Humidity,
		PH:          p.PH,
		Rainfall:    p.Rainfall,
	}
}

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	ImageURL      string  `json:"image_url"`
}

type UpdateProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Category      *string  `json:"category"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	ImageURL      *string  `json:"image_url"`
	IsAvailable   *bool    `json:"is_available"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	ShippingAddress string             `json:"shipping_address" binding:"required"`
	PhoneNumber     string             `json:"phone_number" binding:"required"`
	Notes           string             `json:"notes"`
	Items           []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type SearchByCropsRequest struct {
	CropNames []string `json:"crop_names" binding:"required,min=1"`
}
