package main

import (
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/dgryski/go-wyhash"
)

// correlationReuse is the chance a new record joins a recent
// transaction instead of starting its own, so the same correlation ID
// shows up across several services' files.
const correlationReuse = 0.25

// correlationRingSize bounds how far back a record can join a trace.
const correlationRingSize = 64

// Fabric owns the identity pools shared by all generators: hosts,
// users, and the ring of recently minted correlation IDs. It is safe
// for concurrent use.
type Fabric struct {
	mut   sync.Mutex
	rng   Rng
	hosts []Host
	users []string
	ring  []string
	next  int
}

func NewFabric(cfg *Config, seed string) *Fabric {
	rng := SubRng(seed, "fabric")
	faker := newFaker(seed, "fabric")
	users := []string{"admin", "deploy", "monitoring", "backup"}
	for i := 0; i < 10; i++ {
		users = append(users, faker.Username())
	}
	return &Fabric{
		rng:   rng,
		hosts: cfg.Topology.Hosts,
		users: users,
		ring:  make([]string, 0, correlationRingSize),
	}
}

// newFaker builds a gofakeit instance seeded from the run seed plus a
// component name, so each component draws an independent but
// reproducible stream of fake values.
func newFaker(seed, name string) *gofakeit.Faker {
	return gofakeit.New(int64(wyhash.Hash([]byte(seed+"/"+name), 6971258582664805397)))
}

// Correlation returns the correlation ID for a new record: usually a
// fresh UUID, sometimes one recently handed to another service.
func (f *Fabric) Correlation() string {
	f.mut.Lock()
	defer f.mut.Unlock()
	if len(f.ring) > 0 && f.rng.Bool(correlationReuse) {
		return f.ring[f.rng.Intn(len(f.ring))]
	}
	id := f.rng.UUID()
	if len(f.ring) < correlationRingSize {
		f.ring = append(f.ring, id)
	} else {
		f.ring[f.next] = id
		f.next = (f.next + 1) % correlationRingSize
	}
	return id
}

// PickHost draws a host that advertises the given service, falling
// back to the whole pool when none does.
func (f *Fabric) PickHost(service string) Host {
	f.mut.Lock()
	defer f.mut.Unlock()
	eligible := make([]Host, 0, len(f.hosts))
	for _, h := range f.hosts {
		for _, s := range h.Services {
			if s == service {
				eligible = append(eligible, h)
				break
			}
		}
	}
	if len(eligible) == 0 {
		eligible = f.hosts
	}
	return eligible[f.rng.Intn(len(eligible))]
}

// PickUser draws from the run's user pool.
func (f *Fabric) PickUser() string {
	f.mut.Lock()
	defer f.mut.Unlock()
	return f.rng.Choice(f.users)
}
