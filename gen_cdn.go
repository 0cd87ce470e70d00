package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

var cdnEdgeLocations = []string{"us-west-1", "us-east-1", "eu-west-1", "ap-southeast-1"}

var (
	cdnCacheStatuses    = []string{"HIT", "MISS", "STALE"}
	cdnCacheWeights     = []float64{70, 25, 5}
	cdnResponseStatuses = []int{200, 304, 404, 502}
)

// CDNGenerator emits edge access logs as space-delimited text. The
// column order is frozen: timestamp, edge location, client IP, method,
// path, status, cache status, bytes, correlation_id.
type CDNGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*CDNGenerator)(nil)

func newCDNGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &CDNGenerator{rng: rng, faker: faker}
}

func (g *CDNGenerator) Service() string { return "cdn" }

func (g *CDNGenerator) Produce(ctx GenerationContext) LogRecord {
	line := fmt.Sprintf(`%s %s %s %s /static/%s.%s %d %s %d correlation_id="%s"`,
		ctx.Now.Format("2006-01-02 15:04:05"),
		g.rng.Choice(cdnEdgeLocations),
		g.faker.IPv4Address(),
		g.rng.Choice([]string{"GET", "POST"}),
		g.faker.Word(), g.faker.FileExtension(),
		g.rng.ChoiceInt(cdnResponseStatuses),
		weightedPick(g.rng, cdnCacheStatuses, cdnCacheWeights),
		g.rng.Int(100, 50000),
		ctx.CorrelationID,
	)
	return LogRecord{Service: "cdn", Timestamp: ctx.Now, Line: line}
}
