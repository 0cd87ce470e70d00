package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// LogRecord is the sole output of a generator: one serialized line
// destined for one service's file.
type LogRecord struct {
	Service   string
	Timestamp time.Time
	Line      string
}

// GenerationContext carries everything a generator needs for one
// record: the simulated timestamp, the correlation ID threading this
// record into a cross-service trace, the origin host, and the
// scenario engine for attack/failure decisions. It is passed by value
// and never retained.
type GenerationContext struct {
	Now           time.Time
	CorrelationID string
	Host          Host
	Scenario      *ScenarioEngine
}

// A ServiceGenerator produces one realistic log record per call in its
// service's exact wire format. Generators never fail: out-of-range
// sampled values are clamped so the stream keeps flowing.
type ServiceGenerator interface {
	Service() string
	Produce(ctx GenerationContext) LogRecord
}

// serviceNames is the full catalog, in a fixed order so construction
// and reporting are reproducible.
var serviceNames = []string{
	"nginx", "java_app", "kubernetes", "system_access", "ecommerce",
	"api_gateway", "database", "docker", "cdn", "cicd",
}

// newGenerators builds one generator per configured service. Each gets
// its own Rng and faker derived from the run seed and its name, so the
// services' value streams are independent and reproducible.
func newGenerators(cfg *Config, fabric *Fabric, seed string) map[string]ServiceGenerator {
	ctors := map[string]func(Rng, *gofakeit.Faker, *Fabric) ServiceGenerator{
		"nginx":         newNginxGenerator,
		"java_app":      newJavaAppGenerator,
		"kubernetes":    newKubernetesGenerator,
		"system_access": newSystemAccessGenerator,
		"ecommerce":     newEcommerceGenerator,
		"api_gateway":   newAPIGatewayGenerator,
		"database":      newDatabaseGenerator,
		"docker":        newDockerGenerator,
		"cdn":           newCDNGenerator,
		"cicd":          newCICDGenerator,
	}
	gens := make(map[string]ServiceGenerator)
	for _, name := range serviceNames {
		if _, configured := cfg.Rates[name]; !configured {
			continue
		}
		ctor, ok := ctors[name]
		if !ok {
			continue
		}
		gens[name] = ctor(SubRng(seed, name), newFaker(seed, name), fabric)
	}
	return gens
}

// clampFloat keeps a sampled value at or above min; generators clamp
// rather than error so a bad draw never halts the stream.
func clampFloat(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

func clampInt(v, min int) int {
	if v < min {
		return min
	}
	return v
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func round3(v float64) float64 {
	return float64(int64(v*1000+0.5)) / 1000
}
