package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"evcharge-payment-relay/internal/dto"
	"evcharge-payment-relay/internal/model"
	"evcharge-payment-relay/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CreatePaymentResponse), args.Error(1)
}

func (m *mockPaymentService) HandleWebhook(ctx context.Context, payload *model.WebhookPayload) service.Acknowledgement {
	args := m.Called(ctx, payload)
	return args.Get(0).(service.Acknowledgement)
}

func doRequest(h echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestCreatePayment_Success(t *testing.T) {
	svc := new(mockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *dto.CreatePaymentRequest) bool {
		return req.Station == 1 && req.KWh == 10.5
	})).Return(&dto.CreatePaymentResponse{
		CheckoutURL: "https://pay.example/c",
		QRCode:      "qr",
		Amount:      52500,
	}, nil)

	h := NewPaymentHandler(svc)
	rec := doRequest(h.CreatePayment, `{"station":1,"uid":"device-ab12cd34","kWh":10.5,"email":"a@b.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CreatePaymentResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(52500), resp.Amount)
	assert.Equal(t, "https://pay.example/c", resp.CheckoutURL)
}

func TestCreatePayment_ValidationError(t *testing.T) {
	svc := new(mockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, service.ErrValidation)

	h := NewPaymentHandler(svc)
	rec := doRequest(h.CreatePayment, `{"station":9,"uid":"u","kWh":-1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestCreatePayment_GatewayError(t *testing.T) {
	svc := new(mockPaymentService)
	svc.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, errors.New("payos error 500"))

	h := NewPaymentHandler(svc)
	rec := doRequest(h.CreatePayment, `{"station":1,"uid":"u","kWh":1}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "detail")
}

// The webhook endpoint must acknowledge 200 for every payload, including
// garbage, so the provider never retries indefinitely.
func TestWebhook_AlwaysAcknowledges(t *testing.T) {
	tests := []struct {
		name string
		body string
		ack  service.Acknowledgement
	}{
		{"valid paid payload", `{"code":"00","success":true,"data":{"orderCode":123456789,"amount":52500}}`, service.AckPaid},
		{"unknown order", `{"code":"00","success":true,"data":{"orderCode":555}}`, service.AckNotFound},
		{"malformed payload", `{"foo":"bar"}`, service.AckIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPaymentService)
			svc.On("HandleWebhook", mock.Anything, mock.Anything).Return(tt.ack)

			h := NewPaymentHandler(svc)
			rec := doRequest(h.Webhook, tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
		})
	}
}

func TestWebhook_UnparseableBodyStillAcknowledged(t *testing.T) {
	svc := new(mockPaymentService)

	h := NewPaymentHandler(svc)
	rec := doRequest(h.Webhook, `not-json`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	svc.AssertNotCalled(t, "HandleWebhook", mock.Anything, mock.Anything)
}
