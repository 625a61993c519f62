package client

import (
	"testing"

	"evcharge-payment-relay/internal/config"
	"evcharge-payment-relay/internal/model"

	"github.com/stretchr/testify/assert"
)

const testChecksumKey = "test-checksum-key"

// Regression vector: the five-field signature string and its digest are an
// interoperability contract with the provider and must never drift.
func TestSignCreateRequest_ReferenceVector(t *testing.T) {
	req := &model.CreatePaymentLinkRequest{
		OrderCode:   123456789,
		Amount:      50000,
		Description: "EVSAC-S1-AB12",
		ReturnURL:   "https://x/success",
		CancelURL:   "https://x/cancel",
	}

	got := SignCreateRequest(req, testChecksumKey)

	assert.Equal(t,
		"8ca38dd9eb7a66fead07677cde7eb85d7cba47f38229b7174b38c5d6a1d522ad",
		got)
}

func TestSignWebhookData_ReferenceVector(t *testing.T) {
	data := &model.WebhookData{
		OrderCode:           123456789,
		Amount:              52500,
		Description:         "EVSAC-S1-AB12CD34",
		TransactionDateTime: "2026-08-31 10:15:00",
		Code:                "00",
		Desc:                "success",
	}

	got := SignWebhookData(data, testChecksumKey)

	assert.Equal(t,
		"932a4510b02c17c49b679ae870a875daeee5e37d1419c496eb17d44ea7a5f539",
		got)
}

func TestVerifyWebhook(t *testing.T) {
	c := NewPayOSClient(&config.PayOS{ChecksumKey: testChecksumKey})

	data := &model.WebhookData{
		OrderCode:           42,
		Amount:              1000,
		Description:         "EVSAC-S2-XY",
		TransactionDateTime: "2026-08-31 10:15:00",
		Code:                "00",
		Desc:                "success",
	}

	payload := &model.WebhookPayload{
		Code:      "00",
		Success:   true,
		Data:      data,
		Signature: SignWebhookData(data, testChecksumKey),
	}
	assert.NoError(t, c.VerifyWebhook(payload))

	payload.Signature = "deadbeef"
	assert.Error(t, c.VerifyWebhook(payload))

	assert.Error(t, c.VerifyWebhook(&model.WebhookPayload{Data: data}))
	assert.Error(t, c.VerifyWebhook(&model.WebhookPayload{Signature: "x"}))
}
