package main

import (
	"encoding/json"

	"github.com/brianvoe/gofakeit/v6"
)

var ecomPaymentMethods = []string{"credit_card", "paypal", "apple_pay", "google_pay", "bank_transfer"}

var (
	ecomStatuses      = []string{"completed", "failed", "pending", "cancelled"}
	ecomStatusWeights = []float64{0.85, 0.10, 0.03, 0.02}
)

var ecomErrorCodes = []string{"INSUFFICIENT_FUNDS", "CARD_DECLINED", "FRAUD_DETECTED"}

type ecommerceEvent struct {
	Timestamp      string  `json:"timestamp"`
	EventType      string  `json:"event_type"`
	OrderID        string  `json:"order_id"`
	CustomerID     string  `json:"customer_id"`
	PaymentMethod  string  `json:"payment_method"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Status         string  `json:"status"`
	ProcessingTime float64 `json:"processing_time"`
	CorrelationID  string  `json:"correlation_id"`
	Host           string  `json:"host"`
	ErrorCode      string  `json:"error_code,omitempty"`
}

// EcommerceGenerator emits transaction events. A payment-gateway
// outage forces failed transactions with GATEWAY_TIMEOUT and
// outage-grade processing times.
type EcommerceGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*EcommerceGenerator)(nil)

func newEcommerceGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &EcommerceGenerator{rng: rng, faker: faker}
}

func (g *EcommerceGenerator) Service() string { return "ecommerce" }

func (g *EcommerceGenerator) Produce(ctx GenerationContext) LogRecord {
	var status, errorCode string
	var processingTime float64
	if ctx.Scenario.SampleFailure("payment_gateway_outage") {
		status = "failed"
		errorCode = "GATEWAY_TIMEOUT"
		processingTime = g.rng.Float(30.0, 60.0)
	} else {
		status = weightedPick(g.rng, ecomStatuses, ecomStatusWeights)
		if status != "completed" {
			errorCode = g.rng.Choice(ecomErrorCodes)
		}
		processingTime = g.rng.Float(0.5, 5.0)
	}

	ev := ecommerceEvent{
		Timestamp:      ctx.Now.Format("2006-01-02T15:04:05.000000"),
		EventType:      "transaction",
		OrderID:        g.rng.UUID(),
		CustomerID:     g.faker.UUID(),
		PaymentMethod:  g.rng.Choice(ecomPaymentMethods),
		Amount:         round2(clampFloat(g.rng.Float(10.99, 999.99), 0.01)),
		Currency:       "USD",
		Status:         status,
		ProcessingTime: round3(clampFloat(processingTime, 0.001)),
		CorrelationID:  ctx.CorrelationID,
		Host:           ctx.Host.Name,
		ErrorCode:      errorCode,
	}
	b, _ := json.Marshal(ev)
	return LogRecord{Service: "ecommerce", Timestamp: ctx.Now, Line: string(b)}
}
