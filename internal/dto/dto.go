package dto

type CreatePaymentRequest struct {
	Station int     `json:"station"`
	UID     string  `json:"uid"`
	KWh     float64 `json:"kWh"`
	Email   string  `json:"email,omitempty"`
}

type CreatePaymentResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
	QRCode      string `json:"qrCode"`
	Amount      int64  `json:"amount"`
}
