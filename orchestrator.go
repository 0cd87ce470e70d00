package main

import (
	"sync"
	"time"
)

type RunState int

const (
	Idle RunState = iota
	Running
	Draining
	Stopped
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Draining:
		return "draining"
	default:
		return "stopped"
	}
}

// Orchestrator drives one producer goroutine per configured service,
// each pacing itself at rate * peak multiplier events per second.
// Producers are independent: a slow or failing sink write on one
// service never stalls the others. A duration bound or stop signal
// moves the orchestrator to Draining, which waits for in-flight
// writes before declaring Stopped.
type Orchestrator struct {
	mut      sync.Mutex
	state    RunState
	cfg      *Config
	gens     map[string]ServiceGenerator
	scenario *ScenarioEngine
	fabric   *Fabric
	sink     Sink
	clock    Clock
	log      Logger
	written  map[string]int64
	dropped  map[string]int64
}

func NewOrchestrator(cfg *Config, gens map[string]ServiceGenerator, scenario *ScenarioEngine, fabric *Fabric, sink Sink, clock Clock, log Logger) *Orchestrator {
	return &Orchestrator{
		state:    Idle,
		cfg:      cfg,
		gens:     gens,
		scenario: scenario,
		fabric:   fabric,
		sink:     sink,
		clock:    clock,
		log:      log,
		written:  make(map[string]int64),
		dropped:  make(map[string]int64),
	}
}

func (o *Orchestrator) State() RunState {
	o.mut.Lock()
	defer o.mut.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s RunState) {
	o.mut.Lock()
	o.state = s
	o.mut.Unlock()
	o.log.Debug("orchestrator state: %s\n", s)
}

// Written reports how many records have been written for a service.
func (o *Orchestrator) Written(service string) int64 {
	o.mut.Lock()
	defer o.mut.Unlock()
	return o.written[service]
}

// Run starts all producers and blocks until the stop channel closes
// or the duration elapses (0 means no bound), then drains. The sink
// is closed after the drain so no write races the close.
func (o *Orchestrator) Run(duration time.Duration, stop chan struct{}) {
	o.setState(Running)

	var timerC <-chan time.Time
	if duration > 0 {
		t := time.NewTimer(duration)
		defer t.Stop()
		timerC = t.C
	}

	wg := &sync.WaitGroup{}
	drain := make(chan struct{})
	for _, name := range serviceNames {
		gen, ok := o.gens[name]
		if !ok {
			continue
		}
		wg.Add(1)
		go o.produce(name, gen, wg, drain)
		o.log.Info("started producer for %s\n", name)
	}

	select {
	case <-stop:
		o.log.Info("stopping producers from stop signal\n")
	case <-timerC:
		o.log.Info("stopping producers after %s\n", duration)
	}

	o.setState(Draining)
	close(drain)
	wg.Wait()
	if err := o.sink.Close(); err != nil {
		o.log.Error("error closing sink: %s\n", err)
	}
	o.report()
	o.setState(Stopped)
}

// produce is one service's loop. Each pass recomputes the pacing
// interval so fractional rates and the peak-hour multiplier take
// effect without restarting the goroutine; a zero effective rate
// parks the producer for a second before rechecking.
func (o *Orchestrator) produce(service string, gen ServiceGenerator, wg *sync.WaitGroup, stop chan struct{}) {
	defer wg.Done()
	d, ok := o.pace(service)
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			d, ok = o.pace(service)
			if ok {
				rec := gen.Produce(o.genContext(service))
				if err := o.sink.Write(service, rec.Line); err != nil {
					o.log.Error("dropped %s record: %s\n", service, err)
					o.count(o.dropped, service)
				} else {
					o.count(o.written, service)
				}
			}
			timer.Reset(d)
		}
	}
}

// pace returns the wait until the next event for a service, and
// whether an event should fire at all at the current effective rate.
func (o *Orchestrator) pace(service string) (time.Duration, bool) {
	rate := o.cfg.Rates[service] * o.scenario.Multiplier(o.clock.Now())
	if rate <= 0 {
		return time.Second, false
	}
	return time.Duration(float64(time.Second) / rate), true
}

func (o *Orchestrator) genContext(service string) GenerationContext {
	return GenerationContext{
		Now:           o.clock.Now(),
		CorrelationID: o.fabric.Correlation(),
		Host:          o.fabric.PickHost(service),
		Scenario:      o.scenario,
	}
}

func (o *Orchestrator) count(m map[string]int64, service string) {
	o.mut.Lock()
	m[service]++
	o.mut.Unlock()
}

func (o *Orchestrator) report() {
	o.mut.Lock()
	written := make(map[string]int64, len(o.written))
	for k, v := range o.written {
		written[k] = v
	}
	dropped := make(map[string]int64, len(o.dropped))
	for k, v := range o.dropped {
		dropped[k] = v
	}
	o.mut.Unlock()

	var total int64
	for _, name := range serviceNames {
		if w, ok := written[name]; ok {
			total += w
			o.log.Info("%s: wrote %d records, dropped %d\n", name, w, dropped[name])
		}
	}
	attacks, failures := o.scenario.Counts()
	for name, n := range attacks {
		o.log.Info("attack pattern %s fired %d times\n", name, n)
	}
	for name, n := range failures {
		o.log.Info("failure scenario %s fired %d times\n", name, n)
	}
	o.log.Info("total records written: %d\n", total)
}
