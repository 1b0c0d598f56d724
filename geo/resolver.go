package geo

import (
	"net"

	"github.com/oschwald/maxminddb-golang"
)

type countryRecord struct {
	Country struct {
		IsoCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Resolver defines a public type used by goCaptcha APIs.
//
// Resolver instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Resolver struct {
	reader *maxminddb.Reader
}

// Open describes the open operation and its observable behavior.
//
// Open may return an error when input validation, dependency calls, or security checks fail.
// Open does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Open(file string) (*Resolver, error) {
	reader, err := maxminddb.Open(file)
	if err != nil {
		return nil, err
	}
	return &Resolver{reader: reader}, nil
}

// FromBytes describes the frombytes operation and its observable behavior.
//
// FromBytes may return an error when input validation, dependency calls, or security checks fail.
// FromBytes does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func FromBytes(data []byte) (*Resolver, error) {
	reader, err := maxminddb.FromBytes(data)
	if err != nil {
		return nil, err
	}
	return &Resolver{reader: reader}, nil
}

// Country returns the ISO 3166-1 country code for ip, or "" when the
// address is unparseable or absent from the database. Lookup failures
// are deliberately silent: geography is an enrichment, never a gate.
func (r *Resolver) Country(ip string) string {
	if r == nil || r.reader == nil {
		return ""
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}

	var record countryRecord
	if err := r.reader.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.IsoCode
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (r *Resolver) Close() error {
	if r == nil || r.reader == nil {
		return nil
	}
	return r.reader.Close()
}
