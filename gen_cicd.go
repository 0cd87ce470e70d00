package main

import (
	"encoding/json"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	cicdStages   = []string{"build", "test", "security_scan", "deploy"}
	cicdBranches = []string{"main", "develop", "feature/auth", "hotfix/payment"}
)

type cicdEvent struct {
	Timestamp     string `json:"timestamp"`
	BuildID       string `json:"build_id"`
	Stage         string `json:"stage"`
	Status        string `json:"status"`
	Duration      int    `json:"duration"`
	CommitHash    string `json:"commit_hash"`
	Branch        string `json:"branch"`
	CorrelationID string `json:"correlation_id"`
	Host          string `json:"host"`
}

type CICDGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*CICDGenerator)(nil)

func newCICDGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &CICDGenerator{rng: rng, faker: faker}
}

func (g *CICDGenerator) Service() string { return "cicd" }

func (g *CICDGenerator) Produce(ctx GenerationContext) LogRecord {
	status := "success"
	if g.rng.Bool(0.15) {
		status = "failure"
	}
	ev := cicdEvent{
		Timestamp:     ctx.Now.Format("2006-01-02T15:04:05.000000"),
		BuildID:       g.faker.UUID(),
		Stage:         g.rng.Choice(cicdStages),
		Status:        status,
		Duration:      clampInt(g.rng.Int(30, 600), 1),
		CommitHash:    g.rng.HexString(40),
		Branch:        g.rng.Choice(cicdBranches),
		CorrelationID: ctx.CorrelationID,
		Host:          ctx.Host.Name,
	}
	b, _ := json.Marshal(ev)
	return LogRecord{Service: "cicd", Timestamp: ctx.Now, Line: string(b)}
}
