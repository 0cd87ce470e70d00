package main

// loggen generates synthetic log streams for demo and test pipelines.
// It simulates ten services, each with its own wire format:
//
// - nginx: Common Log Format access lines with rt= and correlation_id=
// - java_app: structured text with bracketed level/thread and key="value" trailers
// - kubernetes, ecommerce, api_gateway, docker, cicd: JSON objects with stable keys
// - system_access: sshd-style syslog lines
// - database, cdn: space-delimited text with frozen column order
//
// Every record carries a correlation ID; records across services
// sometimes share one to simulate a distributed trace. Generation is
// paced per service at a configured events-per-second rate, scaled by
// a peak-hours multiplier, and scripted attack patterns (brute force,
// API abuse) and business failures (payment gateway outage, database
// slowdown) bias the output at configured intensities.
//
// Output goes to per-service directories of size/age-rotated files by
// default; --sink=print and --sink=dummy exist for demos and smoke
// tests. With a fixed --seed, two runs draw identical value streams.
