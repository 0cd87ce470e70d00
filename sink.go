package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// A Sink receives serialized log lines, one service stream each.
// Write appends line plus a newline to the service's current
// destination. A Sink must tolerate concurrent writers on different
// services without letting one stall another.
type Sink interface {
	Write(service, line string) error
	Close() error
}

// FileSink appends to per-service files under a root directory and
// rotates them by size and optionally by age. Rotation only ever
// opens a new timestamp-named file; the previous file is closed and
// left in place so a tailing shipper never loses it. No record is
// split across files.
type FileSink struct {
	mut     sync.Mutex
	dir     string
	maxSize int64
	maxAge  time.Duration
	clock   Clock
	log     Logger
	files   map[string]*serviceFile
}

type serviceFile struct {
	mut    sync.Mutex
	f      *os.File
	path   string
	size   int64
	opened time.Time
	seq    int
}

var _ Sink = (*FileSink)(nil)

func NewFileSink(cfg OutputConfig, clock Clock, log Logger) (*FileSink, error) {
	if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
		return nil, err
	}
	return &FileSink{
		dir:     cfg.Directory,
		maxSize: int64(cfg.Rotation.MaxSizeMB) * 1024 * 1024,
		maxAge:  time.Duration(cfg.Rotation.MaxAge),
		clock:   clock,
		log:     log,
		files:   make(map[string]*serviceFile),
	}, nil
}

// serviceFile returns the per-service state, creating it on first
// use. The outer lock only guards the map; writes serialize on the
// per-service lock so a slow disk on one service cannot block the
// other nine.
func (s *FileSink) serviceFile(service string) *serviceFile {
	s.mut.Lock()
	defer s.mut.Unlock()
	sf, ok := s.files[service]
	if !ok {
		sf = &serviceFile{}
		s.files[service] = sf
	}
	return sf
}

func (s *FileSink) Write(service, line string) error {
	sf := s.serviceFile(service)
	sf.mut.Lock()
	defer sf.mut.Unlock()

	now := s.clock.Now()
	if sf.f == nil {
		if err := s.open(service, sf, now); err != nil {
			return err
		}
	} else if s.needsRotation(sf, int64(len(line))+1, now) {
		sf.f.Close()
		sf.f = nil
		s.log.Info("rotated %s after %d bytes\n", sf.path, sf.size)
		if err := s.open(service, sf, now); err != nil {
			return err
		}
	}

	n, err := fmt.Fprintln(sf.f, line)
	sf.size += int64(n)
	return err
}

func (s *FileSink) needsRotation(sf *serviceFile, pending int64, now time.Time) bool {
	if sf.size+pending > s.maxSize {
		return true
	}
	if s.maxAge > 0 && now.Sub(sf.opened) >= s.maxAge {
		return true
	}
	return false
}

// open creates the service directory if needed and starts a fresh
// timestamp-named file. A sequence suffix disambiguates rotations
// that land within the same second.
func (s *FileSink) open(service string, sf *serviceFile, now time.Time) error {
	dir := filepath.Join(s.dir, service)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s.log", service, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if path == sf.path || fileExists(path) {
		sf.seq++
		name = fmt.Sprintf("%s_%s_%d.log", service, now.Format("20060102_150405"), sf.seq)
		path = filepath.Join(dir, name)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	sf.f = f
	sf.path = path
	sf.size = 0
	sf.opened = now
	s.log.Debug("opened %s\n", path)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *FileSink) Close() error {
	s.mut.Lock()
	defer s.mut.Unlock()
	var firstErr error
	for _, sf := range s.files {
		sf.mut.Lock()
		if sf.f != nil {
			if err := sf.f.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
			sf.f = nil
		}
		sf.mut.Unlock()
	}
	return firstErr
}

// PrintSink writes every line to stdout, prefixed with its service.
// Useful for demos without touching the filesystem.
type PrintSink struct {
	mut   sync.Mutex
	count int64
	log   Logger
}

var _ Sink = (*PrintSink)(nil)

func NewPrintSink(log Logger) *PrintSink {
	return &PrintSink{log: log}
}

func (s *PrintSink) Write(service, line string) error {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.count++
	_, err := fmt.Printf("%s: %s\n", service, line)
	return err
}

func (s *PrintSink) Close() error {
	s.log.Info("print sink wrote %d records\n", s.count)
	return nil
}

// CountingSink discards lines and counts them per service. Used by
// the dummy output mode and by tests.
type CountingSink struct {
	mut    sync.Mutex
	counts map[string]int64
}

var _ Sink = (*CountingSink)(nil)

func NewCountingSink() *CountingSink {
	return &CountingSink{counts: make(map[string]int64)}
}

func (s *CountingSink) Write(service, line string) error {
	s.mut.Lock()
	defer s.mut.Unlock()
	s.counts[service]++
	return nil
}

func (s *CountingSink) Count(service string) int64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	return s.counts[service]
}

func (s *CountingSink) Total() int64 {
	s.mut.Lock()
	defer s.mut.Unlock()
	var total int64
	for _, c := range s.counts {
		total += c
	}
	return total
}

func (s *CountingSink) Close() error { return nil }
