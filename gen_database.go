package main

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	dbQueryTypes = []string{"SELECT", "INSERT", "UPDATE", "DELETE"}
	dbTables     = []string{"users", "orders", "products", "payments", "sessions"}
)

// DatabaseGenerator emits postgres-style query logs. The column order
// is frozen: timestamp UTC [pid] LOG: duration: <ms> ms statement: ...
// correlation_id="...". A database_slowdown failure multiplies the
// reported duration by the configured factor.
type DatabaseGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*DatabaseGenerator)(nil)

func newDatabaseGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &DatabaseGenerator{rng: rng, faker: faker}
}

func (g *DatabaseGenerator) Service() string { return "database" }

func (g *DatabaseGenerator) Produce(ctx GenerationContext) LogRecord {
	factor := 1.0
	if ctx.Scenario.SampleFailure("database_slowdown") {
		factor = ctx.Scenario.FailureFactor("database_slowdown")
	}
	duration := clampFloat(g.rng.Float(0.001, 1.0)*factor, 0.000001)

	line := fmt.Sprintf(`%s UTC [%d] LOG: duration: %.3f ms statement: %s * FROM %s WHERE id = $1 correlation_id="%s"`,
		ctx.Now.Format("2006-01-02 15:04:05.000"),
		g.faker.Number(1000, 9999),
		duration*1000,
		g.rng.Choice(dbQueryTypes),
		g.rng.Choice(dbTables),
		ctx.CorrelationID,
	)
	return LogRecord{Service: "database", Timestamp: ctx.Now, Line: line}
}
