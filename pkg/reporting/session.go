/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: session.go
Description: Mutate session records. A session captures one run of the domain mutator
over a seed, every candidate it produced, and optional DNS resolution results.
*/

package reporting

import (
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/mercy/pkg/interfaces"
)

// CandidateRecord is one emitted candidate with optional resolution data
type CandidateRecord struct {
	Domain    string   `json:"domain"`
	Extension string   `json:"extension"`
	Position  int      `json:"position"`
	Bit       int      `json:"bit"`
	Resolved  bool     `json:"resolved"`
	Addresses []string `json:"addresses,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Session is the report for a single mutate run
type Session struct {
	ID          string            `json:"id"`
	Seed        string            `json:"seed"`
	Mutator     string            `json:"mutator"`
	StartedAt   time.Time         `json:"started_at"`
	Duration    time.Duration     `json:"duration"`
	Resolution  bool              `json:"resolution"`
	Candidates  []CandidateRecord `json:"candidates"`
	Registered  int               `json:"registered"`
	Unavailable int               `json:"unavailable"`
}

// NewSession starts a session with a fresh identifier
func NewSession(seed, mutator string) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Seed:       seed,
		Mutator:    mutator,
		StartedAt:  time.Now(),
		Candidates: []CandidateRecord{},
	}
}

// Add records a candidate in emission order
func (s *Session) Add(c interfaces.DomainCandidate) {
	s.Candidates = append(s.Candidates, CandidateRecord{
		Domain:    c.Text,
		Extension: c.Extension,
		Position:  c.Position,
		Bit:       c.Bit,
	})
}

// RecordResolution stores the outcome of resolving the candidate at index i
func (s *Session) RecordResolution(i int, addrs []string, err error) {
	s.Resolution = true
	rec := &s.Candidates[i]
	switch {
	case err != nil:
		rec.Error = err.Error()
		s.Unavailable++
	case len(addrs) > 0:
		rec.Resolved = true
		rec.Addresses = addrs
		s.Registered++
	}
}

// Finish stamps the session duration
func (s *Session) Finish() {
	s.Duration = time.Since(s.StartedAt)
}

// Domains returns the candidate texts in emission order
func (s *Session) Domains() []string {
	out := make([]string, len(s.Candidates))
	for i, c := range s.Candidates {
		out[i] = c.Domain
	}
	return out
}
