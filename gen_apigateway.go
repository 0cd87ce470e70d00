package main

import (
	"encoding/json"

	"github.com/brianvoe/gofakeit/v6"
)

var gatewayEndpoints = []string{
	"/api/v1/auth/login", "/api/v1/users", "/api/v1/orders",
	"/api/v1/payments", "/api/v1/products", "/api/v1/search",
	"/api/v2/analytics", "/api/v1/health",
}

var gatewayClientTypes = []string{"mobile_app", "web_app", "partner_api", "internal_service"}

var (
	gatewayCodes       = []int{200, 201, 400, 401, 404, 500}
	gatewayCodeWeights = []float64{70, 10, 8, 5, 4, 3}
)

type gatewayEvent struct {
	Timestamp         string  `json:"timestamp"`
	Endpoint          string  `json:"endpoint"`
	Method            string  `json:"method"`
	APIKey            string  `json:"api_key"`
	ClientID          string  `json:"client_id"`
	ClientType        string  `json:"client_type"`
	ResponseCode      int     `json:"response_code"`
	ResponseTime      float64 `json:"response_time"`
	RateLimitExceeded bool    `json:"rate_limit_exceeded"`
	QuotaRemaining    int     `json:"quota_remaining"`
	CorrelationID     string  `json:"correlation_id"`
	Host              string  `json:"host"`
}

// APIGatewayGenerator emits gateway access events. Under the
// api_abuse pattern a request hammers a targeted endpoint with a
// suspicious key and gets rate-limited.
type APIGatewayGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*APIGatewayGenerator)(nil)

func newAPIGatewayGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &APIGatewayGenerator{rng: rng, faker: faker}
}

func (g *APIGatewayGenerator) Service() string { return "api_gateway" }

func (g *APIGatewayGenerator) Produce(ctx GenerationContext) LogRecord {
	var endpoint, apiKey string
	var rateLimited bool
	var responseCode int
	if ctx.Scenario.SampleAttack("api_abuse") {
		endpoint = ctx.Scenario.AttackEndpoint("api_abuse")
		apiKey = "suspicious_key_" + g.rng.HexString(8)
		rateLimited = true
		responseCode = 429
	} else {
		endpoint = g.rng.Choice(gatewayEndpoints)
		apiKey = g.rng.UUID()
		responseCode = weightedPick(g.rng, gatewayCodes, gatewayCodeWeights)
	}

	quota := 0
	if !rateLimited {
		quota = g.rng.Int(0, 1000)
	}

	ev := gatewayEvent{
		Timestamp:         ctx.Now.Format("2006-01-02T15:04:05.000000"),
		Endpoint:          endpoint,
		Method:            g.rng.Choice([]string{"GET", "POST", "PUT", "DELETE"}),
		APIKey:            apiKey,
		ClientID:          g.faker.UUID(),
		ClientType:        g.rng.Choice(gatewayClientTypes),
		ResponseCode:      responseCode,
		ResponseTime:      round2(clampFloat(g.rng.Float(10, 500), 0.01)),
		RateLimitExceeded: rateLimited,
		QuotaRemaining:    quota,
		CorrelationID:     ctx.CorrelationID,
		Host:              ctx.Host.Name,
	}
	b, _ := json.Marshal(ev)
	return LogRecord{Service: "api_gateway", Timestamp: ctx.Now, Line: string(b)}
}
