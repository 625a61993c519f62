package model

// Wire types for the PayOS payment-request API and its webhook callback.

type CreatePaymentLinkRequest struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ReturnURL   string `json:"returnUrl"`
	CancelURL   string `json:"cancelUrl"`
	BuyerEmail  string `json:"buyerEmail,omitempty"`
	BuyerName   string `json:"buyerName,omitempty"`
	Signature   string `json:"signature"`
}

type PaymentLinkData struct {
	OrderCode   int64  `json:"orderCode"`
	Amount      int64  `json:"amount"`
	CheckoutURL string `json:"checkoutUrl"`
	QRCode      string `json:"qrCode"`
	Status      string `json:"status"`
}

type CreatePaymentLinkResponse struct {
	Code string           `json:"code"`
	Desc string           `json:"desc"`
	Data *PaymentLinkData `json:"data"`
}

type WebhookData struct {
	OrderCode           int64  `json:"orderCode"`
	Amount              int64  `json:"amount"`
	Description         string `json:"description"`
	TransactionDateTime string `json:"transactionDateTime"`
	Code                string `json:"code"`
	Desc                string `json:"desc"`
}

type WebhookPayload struct {
	Code      string       `json:"code"`
	Desc      string       `json:"desc"`
	Success   bool         `json:"success"`
	Data      *WebhookData `json:"data"`
	Signature string       `json:"signature"`
}
