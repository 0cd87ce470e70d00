package main

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	javaLevels       = []string{"INFO", "WARN", "ERROR", "DEBUG", "TRACE"}
	javaLevelWeights = []float64{0.60, 0.20, 0.10, 0.08, 0.02}
)

var javaLoggers = []string{
	"com.example.controller.UserController",
	"com.example.service.PaymentService",
	"com.example.repository.OrderRepository",
	"com.example.security.AuthenticationFilter",
	"org.springframework.web.servlet.DispatcherServlet",
	"org.hibernate.SQL",
}

// JavaAppGenerator emits application-server logs as structured text:
// timestamp, bracketed level and thread, logger, message, then
// key="value" trailers for field extraction.
type JavaAppGenerator struct {
	rng   Rng
	faker *gofakeit.Faker
}

var _ ServiceGenerator = (*JavaAppGenerator)(nil)

func newJavaAppGenerator(rng Rng, faker *gofakeit.Faker, _ *Fabric) ServiceGenerator {
	return &JavaAppGenerator{rng: rng, faker: faker}
}

func (g *JavaAppGenerator) Service() string { return "java_app" }

func (g *JavaAppGenerator) Produce(ctx GenerationContext) LogRecord {
	level := weightedPick(g.rng, javaLevels, javaLevelWeights)
	lg := g.rng.Choice(javaLoggers)
	thread := fmt.Sprintf("http-nio-8080-exec-%d", g.rng.Int(1, 20))
	message := g.message(level, lg)

	exception := ""
	if level == "ERROR" {
		exception = ` exception_class="java.sql.SQLException" exception_message="Connection timeout after 30000ms" stack_trace="java.sql.SQLException: Connection timeout\n\tat com.example.repository.OrderRepository.findById(OrderRepository.java:45)"`
	}

	line := fmt.Sprintf(`%s [%-5s] [%s] %s - %s correlation_id="%s" host="%s" service="user-service" version="1.2.3"%s`,
		ctx.Now.Format("2006-01-02T15:04:05.000000"),
		level, thread, lg, message,
		ctx.CorrelationID, ctx.Host.Name, exception,
	)
	return LogRecord{Service: "java_app", Timestamp: ctx.Now, Line: line}
}

func (g *JavaAppGenerator) message(level, lg string) string {
	switch {
	case strings.Contains(lg, "Controller"):
		return fmt.Sprintf("Processing %s request to /api/%s",
			g.rng.Choice([]string{"GET", "POST", "PUT"}),
			g.rng.Choice([]string{"users", "orders", "payments"}))
	case strings.Contains(lg, "Service"):
		if level == "ERROR" {
			return fmt.Sprintf("Failed to process payment for order %s: Gateway timeout", g.rng.UUID())
		}
		return fmt.Sprintf("Successfully processed %s for user %s",
			g.rng.Choice([]string{"payment", "order", "user registration"}), g.rng.UUID())
	case strings.Contains(lg, "Repository"):
		return fmt.Sprintf("Executing query: SELECT * FROM %s WHERE id = ?",
			g.rng.Choice([]string{"users", "orders", "payments"}))
	case strings.Contains(lg, "Security"):
		outcome := "successful"
		if level == "ERROR" {
			outcome = "failed"
		}
		return fmt.Sprintf("User authentication %s for user: %s", outcome, g.faker.Username())
	default:
		return fmt.Sprintf("Application event: %s", g.faker.Sentence(6))
	}
}
