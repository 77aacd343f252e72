package service

import (
	"context"
	"errors"

	"github.com/99minutos/domain-console/internal/core/domain"
)

type mapStore struct {
	values map[string]string
	err    error
}

func newMapStore(kv ...string) *mapStore {
	s := &mapStore{values: make(map[string]string)}
	for i := 0; i+1 < len(kv); i += 2 {
		s.values[kv[i]] = kv[i+1]
	}
	return s
}

func (s *mapStore) Get(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, key, value string) error {
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	return nil
}

func (s *mapStore) Remove(_ context.Context, key string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.values, key)
	return nil
}

type stubAuthBackend struct {
	result *domain.LoginResult
	err    error
	got    domain.LoginRequest
}

func (b *stubAuthBackend) DevLogin(_ context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	b.got = req
	if b.err != nil {
		return nil, b.err
	}
	return b.result, nil
}

var errBoom = errors.New("boom")
