package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	accessActions       = []string{"login", "logout", "sudo", "ssh_key_auth", "password_change"}
	accessActionWeights = []float64{0.40, 0.35, 0.15, 0.05, 0.05}
)

// SystemAccessGenerator emits sshd-style syslog lines. During a
// brute-force burst the result is forced to FAILED from a configured
// attacker IP against an administrative account.
type SystemAccessGenerator struct {
	rng    Rng
	faker  *gofakeit.Faker
	fabric *Fabric
}

var _ ServiceGenerator = (*SystemAccessGenerator)(nil)

func newSystemAccessGenerator(rng Rng, faker *gofakeit.Faker, fabric *Fabric) ServiceGenerator {
	return &SystemAccessGenerator{rng: rng, faker: faker, fabric: fabric}
}

func (g *SystemAccessGenerator) Service() string { return "system_access" }

func (g *SystemAccessGenerator) Produce(ctx GenerationContext) LogRecord {
	var user, sourceIP, action, result, sessionID string
	if ctx.Scenario.SampleAttack("brute_force") {
		user = ctx.Scenario.AttackUser("brute_force")
		sourceIP = ctx.Scenario.AttackSourceIP("brute_force")
		action = "login"
		result = "FAILED"
		sessionID = "none"
	} else {
		user = g.fabric.PickUser()
		sourceIP = g.faker.IPv4Address()
		action = weightedPick(g.rng, accessActions, accessActionWeights)
		result = "SUCCESS"
		if g.rng.Bool(0.05) {
			result = "FAILED"
		}
		sessionID = "none"
		if result == "SUCCESS" {
			sessionID = g.rng.UUID()
		}
	}

	line := fmt.Sprintf(`%s %s sshd[%d]: %s %s for user %s from %s port %d session_id="%s" correlation_id="%s"`,
		ctx.Now.Format("Jan 02 15:04:05"),
		ctx.Host.Name,
		g.rng.Int(1000, 9999),
		result, action, user, sourceIP,
		g.rng.Int(30000, 65000),
		sessionID, ctx.CorrelationID,
	)
	return LogRecord{Service: "system_access", Timestamp: ctx.Now, Line: line}
}
