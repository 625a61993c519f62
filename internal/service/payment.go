package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"evcharge-payment-relay/internal/client"
	"evcharge-payment-relay/internal/config"
	"evcharge-payment-relay/internal/dto"
	"evcharge-payment-relay/internal/model"
	"evcharge-payment-relay/internal/repository"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// ErrValidation marks bad create input; the handler maps it to 400.
var ErrValidation = errors.New("invalid request")

// Acknowledgement is the terminal branch of webhook processing. Every branch
// is acknowledged 200 upstream; the value only drives logging and tests.
type Acknowledgement int

const (
	AckIgnored Acknowledgement = iota
	AckNotFound
	AckAlreadyPaid
	AckPaid
)

// descriptionLimit is the provider's maximum description length.
const descriptionLimit = 25

// transactionDateTime layouts the provider has been seen sending.
var txTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

type PaymentService interface {
	CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error)
	HandleWebhook(ctx context.Context, payload *model.WebhookPayload) Acknowledgement
}

type paymentServiceImpl struct {
	payosClient client.PayOSClient
	orderRepo   repository.OrderRepository
	notifier    Notifier
	unitPrice   int64
	stations    map[int]bool
	returnURL   string
	cancelURL   string
	// now and newOrderCode are swappable for tests.
	now          func() time.Time
	newOrderCode func() int64
}

func NewPaymentService(
	payosClient client.PayOSClient,
	orderRepo repository.OrderRepository,
	notifier Notifier,
	pricing *config.Pricing,
	payosCfg *config.PayOS,
) PaymentService {
	stations := make(map[int]bool, len(pricing.Stations))
	for _, s := range pricing.Stations {
		stations[s] = true
	}

	return &paymentServiceImpl{
		payosClient:  payosClient,
		orderRepo:    orderRepo,
		notifier:     notifier,
		unitPrice:    pricing.UnitPrice,
		stations:     stations,
		returnURL:    payosCfg.ReturnURL,
		cancelURL:    payosCfg.CancelURL,
		now:          time.Now,
		newOrderCode: func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *dto.CreatePaymentRequest) (*dto.CreatePaymentResponse, error) {
	if !s.stations[req.Station] {
		return nil, fmt.Errorf("%w: unknown station %d", ErrValidation, req.Station)
	}
	if req.KWh <= 0 || math.IsInf(req.KWh, 0) || math.IsNaN(req.KWh) {
		return nil, fmt.Errorf("%w: kWh must be a finite positive number", ErrValidation)
	}

	amount := computeAmount(req.KWh, s.unitPrice)

	orderCode := s.newOrderCode()
	exists, err := s.orderRepo.ExistsByOrderCode(ctx, orderCode)
	if err != nil {
		return nil, fmt.Errorf("check order code: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("order code %d collision", orderCode)
	}

	resp, err := s.payosClient.CreatePaymentLink(ctx, &model.CreatePaymentLinkRequest{
		OrderCode:   orderCode,
		Amount:      amount,
		Description: buildDescription(req.Station, req.UID),
		ReturnURL:   s.returnURL,
		CancelURL:   s.cancelURL,
		BuyerEmail:  req.Email,
	})
	if err != nil {
		// Nothing persisted: no orphan PENDING records for links that were
		// never payable.
		return nil, fmt.Errorf("create payment link: %w", err)
	}

	order := &model.Order{
		ID:        uuid.NewString(),
		OrderCode: orderCode,
		Station:   req.Station,
		UID:       req.UID,
		KWh:       req.KWh,
		Amount:    amount,
		Email:     req.Email,
		Status:    model.StatusPending,
		CreatedAt: s.now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	return &dto.CreatePaymentResponse{
		CheckoutURL: resp.Data.CheckoutURL,
		QRCode:      resp.Data.QRCode,
		Amount:      amount,
	}, nil
}

// HandleWebhook runs the payment-confirmation state machine. The paid
// transition is persisted before any notification is attempted, so a
// notification outage can never leave an order stuck in PENDING.
func (s *paymentServiceImpl) HandleWebhook(ctx context.Context, payload *model.WebhookPayload) Acknowledgement {
	if payload == nil || payload.Data == nil || payload.Data.OrderCode == 0 {
		log.Info("webhook ignored: missing data or order code")
		return AckIgnored
	}
	if !payload.Success && payload.Code != client.SuccessCode {
		log.Infof("webhook ignored for order %d: code=%s", payload.Data.OrderCode, payload.Code)
		return AckIgnored
	}
	if err := s.payosClient.VerifyWebhook(payload); err != nil {
		log.Warnf("webhook ignored for order %d: %v", payload.Data.OrderCode, err)
		return AckIgnored
	}

	paidAt := s.parseTransactionTime(payload.Data.TransactionDateTime)

	order, err := s.orderRepo.MarkPaid(ctx, payload.Data.OrderCode, paidAt)
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		log.Warnf("webhook for unknown order %d", payload.Data.OrderCode)
		return AckNotFound
	case errors.Is(err, repository.ErrAlreadyPaid):
		log.Infof("duplicate webhook for order %d", payload.Data.OrderCode)
		return AckAlreadyPaid
	case err != nil:
		// Only observable via logs: the provider must still get its 200.
		log.Errorf("persist paid transition for order %d: %v", payload.Data.OrderCode, err)
		return AckIgnored
	}

	if payload.Data.Amount != order.Amount {
		log.Warnf("order %d: webhook amount %d differs from stored %d",
			order.OrderCode, payload.Data.Amount, order.Amount)
	}

	// Notifications use the stored record, never webhook-reported fields.
	s.notifier.PaymentReceived(order)

	return AckPaid
}

func (s *paymentServiceImpl) parseTransactionTime(raw string) time.Time {
	for _, layout := range txTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return s.now()
}

// computeAmount rounds kWh * unitPrice to whole minor units via decimal to
// keep half-up rounding exact.
func computeAmount(kWh float64, unitPrice int64) int64 {
	return decimal.NewFromFloat(kWh).
		Mul(decimal.NewFromInt(unitPrice)).
		Round(0).
		IntPart()
}

func buildDescription(station int, uid string) string {
	desc := fmt.Sprintf("EVSAC-S%d-%s", station, uid)
	if len(desc) > descriptionLimit {
		desc = desc[:descriptionLimit]
	}
	return desc
}
