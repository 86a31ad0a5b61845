package services

import (
	"context"

	"sharkhome/internal/core"
	"sharkhome/internal/storage"
)

// memStore is an in-memory Store that counts persistence events.
type memStore struct {
	state   storage.State
	cfg     core.RemoteConfig
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load(context.Context) (storage.State, error) {
	if m.loadErr != nil {
		return storage.State{}, m.loadErr
	}
	return m.state, nil
}

func (m *memStore) Save(_ context.Context, s storage.State) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.state = s
	m.saves++
	return nil
}

func (m *memStore) LoadRemoteConfig(context.Context) (core.RemoteConfig, error) {
	return m.cfg, nil
}

func (m *memStore) SaveRemoteConfig(_ context.Context, cfg core.RemoteConfig) error {
	m.cfg = cfg
	return nil
}

func (m *memStore) Close() error { return nil }

// recordingPusher captures every push synchronously.
type recordingPusher struct {
	actions []string
	data    []any
}

func (p *recordingPusher) Push(action string, data any) {
	p.actions = append(p.actions, action)
	p.data = append(p.data, data)
}
