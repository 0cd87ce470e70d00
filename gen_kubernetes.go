package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var k8sNamespaces = []string{"default", "kube-system", "monitoring", "app-prod", "app-staging"}

var (
	k8sLevels       = []string{"INFO", "WARN", "ERROR"}
	k8sLevelWeights = []float64{0.70, 0.20, 0.10}
)

var k8sErrorMessages = []string{
	"Pod failed to start: ImagePullBackOff",
	"Container crashed with exit code 1",
	"Failed to mount volume: permission denied",
	"Readiness probe failed: HTTP probe failed with statuscode: 503",
}

var k8sWarnMessages = []string{
	"Pod memory usage above 80%",
	"Container restart count increased",
	"Slow startup detected: 45s to ready",
	"Deprecated API version detected",
}

var k8sInfoMessages = []string{
	"Pod successfully scheduled on node",
	"Container started successfully",
	"Health check passed",
	"Resource limits updated",
}

// kubernetesEvent freezes the JSON key order for orchestration logs.
type kubernetesEvent struct {
	Timestamp     string `json:"timestamp"`
	Namespace     string `json:"namespace"`
	Pod           string `json:"pod"`
	Container     string `json:"container"`
	Level         string `json:"level"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlation_id"`
	Node          string `json:"node"`
	Cluster       string `json:"cluster"`
}

type KubernetesGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*KubernetesGenerator)(nil)

func newKubernetesGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &KubernetesGenerator{rng: rng, faker: faker}
}

func (g *KubernetesGenerator) Service() string { return "kubernetes" }

func (g *KubernetesGenerator) Produce(ctx GenerationContext) LogRecord {
	level := weightedPick(g.rng, k8sLevels, k8sLevelWeights)
	var message string
	switch level {
	case "ERROR":
		message = g.rng.Choice(k8sErrorMessages)
	case "WARN":
		message = g.rng.Choice(k8sWarnMessages)
	default:
		message = g.rng.Choice(k8sInfoMessages)
	}

	ev := kubernetesEvent{
		Timestamp: ctx.Now.Format("2006-01-02T15:04:05.000000"),
		Namespace: g.rng.Choice(k8sNamespaces),
		Pod: fmt.Sprintf("%s-%d-%s",
			g.rng.Choice([]string{"nginx", "api-server", "worker", "redis"}),
			g.rng.Int(1000, 9999), strings.ToLower(g.faker.LetterN(5))),
		Container:     g.rng.Choice([]string{"main", "sidecar", "init"}),
		Level:         level,
		Message:       message,
		CorrelationID: ctx.CorrelationID,
		Node:          ctx.Host.Name,
		Cluster:       "production-cluster",
	}
	b, _ := json.Marshal(ev)
	return LogRecord{Service: "kubernetes", Timestamp: ctx.Now, Line: string(b)}
}
