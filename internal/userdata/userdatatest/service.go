// Package userdatatest provides an in-memory userdata.Service for tests.
package userdatatest

import (
	"context"
	"errors"
	"sync"

	"oauth-userdata/internal/userdata"
)

// Service answers requests from a fixed endpoint→body table and records
// every endpoint it was asked for.
type Service struct {
	Responses map[string]string
	Errors    map[string]error

	mu       sync.Mutex
	requests []string
}

func NewService(responses map[string]string) *Service {
	return &Service{
		Responses: responses,
		Errors:    map[string]error{},
	}
}

func (s *Service) Request(_ context.Context, endpoint string) ([]byte, error) {
	s.mu.Lock()
	s.requests = append(s.requests, endpoint)
	s.mu.Unlock()

	if err, ok := s.Errors[endpoint]; ok {
		return nil, err
	}
	body, ok := s.Responses[endpoint]
	if !ok {
		return nil, &userdata.TransportError{
			Endpoint:   endpoint,
			StatusCode: 404,
			Err:        errors.New("not found"),
		}
	}
	return []byte(body), nil
}

// Requests returns the endpoints requested so far, in order.
func (s *Service) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}
