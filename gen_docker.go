package main

import (
	"encoding/json"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

var dockerEvents = []string{"start", "stop", "restart", "oom_kill", "health_check"}

type dockerEvent struct {
	Timestamp     string `json:"timestamp"`
	ContainerID   string `json:"container_id"`
	Image         string `json:"image"`
	Event         string `json:"event"`
	ExitCode      *int   `json:"exit_code"`
	CorrelationID string `json:"correlation_id"`
	Host          string `json:"host"`
}

// DockerGenerator emits container runtime lifecycle events; exit
// codes are present only for terminating events.
type DockerGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*DockerGenerator)(nil)

func newDockerGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &DockerGenerator{rng: rng, faker: faker}
}

func (g *DockerGenerator) Service() string { return "docker" }

func (g *DockerGenerator) Produce(ctx GenerationContext) LogRecord {
	event := g.rng.Choice(dockerEvents)
	var exitCode *int
	if event == "stop" || event == "oom_kill" {
		code := g.rng.ChoiceInt([]int{0, 1, 125, 137})
		exitCode = &code
	}

	ev := dockerEvent{
		Timestamp:   ctx.Now.Format("2006-01-02T15:04:05.000000"),
		ContainerID: g.rng.HexString(12),
		Image: fmt.Sprintf("%s:%s",
			g.rng.Choice([]string{"nginx", "postgres", "redis", "app"}),
			g.faker.AppVersion()),
		Event:         event,
		ExitCode:      exitCode,
		CorrelationID: ctx.CorrelationID,
		Host:          ctx.Host.Name,
	}
	b, _ := json.Marshal(ev)
	return LogRecord{Service: "docker", Timestamp: ctx.Now, Line: string(b)}
}
