package mocks

import (
	"context"
	"time"

	"evcharge-payment-relay/internal/client"
	"evcharge-payment-relay/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByOrderCode(ctx context.Context, orderCode int64) (*model.Order, error) {
	args := m.Called(ctx, orderCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistsByOrderCode(ctx context.Context, orderCode int64) (bool, error) {
	args := m.Called(ctx, orderCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, orderCode int64, paidAt time.Time) (*model.Order, error) {
	args := m.Called(ctx, orderCode, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

type MockPayOSClient struct {
	mock.Mock
}

func (m *MockPayOSClient) CreatePaymentLink(ctx context.Context, req *model.CreatePaymentLinkRequest) (*model.CreatePaymentLinkResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CreatePaymentLinkResponse), args.Error(1)
}

func (m *MockPayOSClient) VerifyWebhook(payload *model.WebhookPayload) error {
	args := m.Called(payload)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PaymentReceived(order *model.Order) {
	m.Called(order)
}

type MockBlynkClient struct {
	mock.Mock
}

func (m *MockBlynkClient) UpdatePin(ctx context.Context, pin, value string) error {
	args := m.Called(ctx, pin, value)
	return args.Error(0)
}

type MockEmailClient struct {
	mock.Mock
}

func (m *MockEmailClient) SendReceipt(ctx context.Context, receipt *client.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}
