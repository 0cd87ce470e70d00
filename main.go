package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
)

// runDuration accepts both bare numbers ("5", "2.5"), read as
// seconds, and time.Duration strings ("90s", "2m").
type runDuration time.Duration

func (d *runDuration) UnmarshalFlag(value string) error {
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		*d = runDuration(time.Duration(secs * float64(time.Second)))
		return nil
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		return err
	}
	*d = runDuration(dur)
	return nil
}

type Options struct {
	Run struct {
		Duration runDuration `long:"duration" description:"stop after this many seconds, or a duration like 90s or 2m (0 means run until interrupted)" default:"0"`
		Seed     string      `long:"seed" description:"string seed for the random number generator (random each run if empty)"`
	} `group:"Run Options"`
	Output struct {
		Sink      string `long:"sink" description:"where generated lines go" choice:"file" choice:"print" choice:"dummy" default:"file"`
		Directory string `long:"output" description:"override the configured output directory"`
	} `group:"Output Options"`
	Global struct {
		Config   string `long:"config" short:"c" description:"name of YAML config file to load"`
		Status   bool   `long:"status" short:"s" description:"print the resolved configuration and exit without generating"`
		WriteCfg string `long:"writecfg" description:"write the effective YAML config to the specified file and quit"`
		LogLevel string `long:"loglevel" description:"level of operational logging" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	} `group:"Global Options"`
}

func (o *Options) DebugLevel() int {
	switch o.Global.LogLevel {
	case "debug":
		return 3
	case "info":
		return 2
	case "warn":
		return 1
	default:
		return 0
	}
}

func main() {
	opts := &Options{}

	parser := flags.NewParser(opts, flags.Default)
	parser.Usage = `[OPTIONS]

	loggen generates realistic multi-format log streams for ten simulated
	services (web server, application server, orchestration, authentication,
	e-commerce, API gateway, database, container runtime, CDN, CI/CD) and
	appends them to rotating per-service files. It embeds correlation IDs
	across services, shapes traffic by time of day, and injects scripted
	attack and failure scenarios, so downstream field-extraction tooling has
	believable high-volume input to chew on.

	Rates, topology, and scenarios come from a YAML config file selected
	with "--config=FILENAME"; without one a built-in demo configuration is
	used. See "example.yml" for the schema. Use "--status" to inspect the
	resolved configuration and output paths without generating anything,
	and "--seed" to make two runs produce identical streams.
	`

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		log.Fatalf("error reading command line: %v", err)
	}

	logger := NewLogger(opts.DebugLevel())

	cfg := DefaultConfig()
	if opts.Global.Config != "" {
		cfg = &Config{}
		if err := ReadConfig(cfg, opts.Global.Config); err != nil {
			logger.Fatal("unable to read config file %s: %s\n", opts.Global.Config, err)
		}
		logger.Info("read config from %s\n", opts.Global.Config)
	}
	if opts.Output.Directory != "" {
		cfg.Output.Directory = opts.Output.Directory
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration: %s\n", err)
	}

	if opts.Global.WriteCfg != "" {
		if err := WriteConfig(cfg, opts.Global.WriteCfg); err != nil {
			logger.Fatal("unable to write config: %s\n", err)
		}
		logger.Info("wrote config to %s\n", opts.Global.WriteCfg)
		os.Exit(0)
	}

	seed := opts.Run.Seed
	if seed == "" {
		seed = strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	clock := Clock(wallClock{})
	rng := SubRng(seed, "scenario")
	scenario := NewScenarioEngine(cfg, rng)

	if opts.Global.Status {
		printStatus(cfg, scenario, clock)
		os.Exit(0)
	}

	fabric := NewFabric(cfg, seed)
	gens := newGenerators(cfg, fabric, seed)

	var sink Sink
	switch opts.Output.Sink {
	case "print":
		sink = NewPrintSink(logger)
	case "dummy":
		sink = NewCountingSink()
	default:
		var err error
		sink, err = NewFileSink(cfg.Output, clock, logger)
		if err != nil {
			logger.Fatal("unable to open output directory %s: %s\n", cfg.Output.Directory, err)
		}
	}

	orchestrator := NewOrchestrator(cfg, gens, scenario, fabric, sink, clock, logger)

	// catch ctrl-c and close the stop channel so producers drain cleanly
	stop := make(chan struct{})
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigch:
			logger.Warn("\nshutting down from operating system signal\n")
			close(stop)
		case <-stop:
		}
	}()

	orchestrator.Run(time.Duration(opts.Run.Duration), stop)
}

func printStatus(cfg *Config, scenario *ScenarioEngine, clock Clock) {
	now := clock.Now()
	fmt.Printf("peak hours: %s-%s x%g (active now: %v)\n",
		cfg.Business.PeakHours.Start, cfg.Business.PeakHours.End,
		cfg.Business.PeakHours.Multiplier, scenario.InPeakWindow(now))
	fmt.Println("\nconfigured services:")
	for _, name := range serviceNames {
		rate, ok := cfg.Rates[name]
		if !ok {
			continue
		}
		adjusted := rate * scenario.Multiplier(now)
		fmt.Printf("  %-15s %6.1f/s (adjusted: %6.1f/s)\n", name, rate, adjusted)
	}
	fmt.Println("\noutput directories:")
	for _, name := range serviceNames {
		if _, ok := cfg.Rates[name]; !ok {
			continue
		}
		fmt.Printf("  %-15s %s\n", name, filepath.Join(cfg.Output.Directory, name))
	}
	fmt.Println("\nsimulated hosts:")
	for _, h := range cfg.Topology.Hosts {
		fmt.Printf("  %-15s (%s, %s)\n", h.Name, h.IP, h.Role)
	}
}
