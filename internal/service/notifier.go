package service

import (
	"context"
	"fmt"
	"time"

	"evcharge-payment-relay/internal/client"
	"evcharge-payment-relay/internal/config"
	"evcharge-payment-relay/internal/model"

	"github.com/labstack/gommon/log"
)

const notifyTimeout = 10 * time.Second

// Notifier fans a paid order out to the receipt mailer and the IoT
// dashboard. Every send is best-effort: failures are logged and swallowed so
// the webhook acknowledgement path can never be blocked or failed by a
// downstream outage.
type Notifier interface {
	PaymentReceived(order *model.Order)
}

type notifierImpl struct {
	emailClient client.EmailClient
	blynkClient client.BlynkClient
	messagePin  string
}

func NewNotifier(emailClient client.EmailClient, blynkClient client.BlynkClient, blynkCfg *config.Blynk) Notifier {
	return &notifierImpl{
		emailClient: emailClient,
		blynkClient: blynkClient,
		messagePin:  blynkCfg.MessagePin,
	}
}

func (n *notifierImpl) PaymentReceived(order *model.Order) {
	paidAt := time.Now()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	if order.Email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		err := n.emailClient.SendReceipt(ctx, &client.Receipt{
			To:        order.Email,
			Station:   order.Station,
			KWh:       order.KWh,
			Amount:    order.Amount,
			OrderCode: order.OrderCode,
			PaidAt:    paidAt,
		})
		cancel()
		if err != nil {
			log.Warnf("send receipt email for order %d: %v", order.OrderCode, err)
		}
	}

	// Station pin releases the authorized energy to the kiosk firmware,
	// message pin shows the operator announcement. Both are attempted even
	// if one fails.
	updates := [][2]string{
		{fmt.Sprintf("v%d", order.Station), fmt.Sprintf("%g", order.KWh)},
		{n.messagePin, fmt.Sprintf("Order %d paid: %d", order.OrderCode, order.Amount)},
	}
	for _, u := range updates {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		if err := n.blynkClient.UpdatePin(ctx, u[0], u[1]); err != nil {
			log.Warnf("dashboard update %s for order %d: %v", u[0], order.OrderCode, err)
		}
		cancel()
	}
}
