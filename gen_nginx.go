package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

// User agents are a frozen list: downstream extraction demos match on
// these literal strings.
var nginxUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	"curl/7.68.0",
	"Go-http-client/1.1",
	"python-requests/2.28.0",
}

var nginxURIs = []string{
	"/", "/products", "/api/users", "/health", "/metrics",
	"/api/orders", "/login", "/checkout", "/search",
}

var nginxAttackURIs = []string{"/admin/login", "/wp-admin", "/api/auth/login"}

var (
	nginxStatuses      = []int{200, 404, 500, 403, 502, 301, 400}
	nginxStatusWeights = []float64{0.70, 0.15, 0.05, 0.03, 0.02, 0.03, 0.02}
)

// NginxGenerator emits web-server access logs in Common Log Format
// with rt= and correlation_id= trailers.
type NginxGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*NginxGenerator)(nil)

func newNginxGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &NginxGenerator{rng: rng, faker: faker}
}

func (g *NginxGenerator) Service() string { return "nginx" }

func (g *NginxGenerator) Produce(ctx GenerationContext) LogRecord {
	var remoteAddr, uri string
	var status int
	if ctx.Scenario.SampleAttack("brute_force") {
		remoteAddr = ctx.Scenario.AttackSourceIP("brute_force")
		status = g.rng.ChoiceInt([]int{401, 403, 404})
		uri = g.rng.Choice(nginxAttackURIs)
	} else {
		remoteAddr = g.faker.IPv4Address()
		status = weightedPick(g.rng, nginxStatuses, nginxStatusWeights)
		uri = g.rng.Choice(nginxURIs)
	}

	method := "GET"
	switch uri {
	case "/login", "/api/auth/login", "/checkout":
		method = "POST"
	default:
		method = g.rng.Choice([]string{"GET", "POST", "PUT"})
	}

	var responseTime float64
	var bytesSent int
	if status == 200 {
		responseTime = g.rng.Float(0.001, 2.5)
		bytesSent = g.rng.Int(200, 50000)
	} else {
		responseTime = g.rng.Float(2.0, 10.0)
		bytesSent = g.rng.Int(100, 1000)
	}
	responseTime = clampFloat(responseTime, 0.001)
	bytesSent = clampInt(bytesSent, 0)

	line := fmt.Sprintf(`%s - - [%s] "%s %s HTTP/1.1" %d %d "-" "%s" rt=%.3f correlation_id="%s"`,
		remoteAddr,
		ctx.Now.Format("02/Jan/2006:15:04:05 -0700"),
		method, uri, status, bytesSent,
		g.rng.Choice(nginxUserAgents),
		responseTime,
		ctx.CorrelationID,
	)
	return LogRecord{Service: "nginx", Timestamp: ctx.Now, Line: line}
}
