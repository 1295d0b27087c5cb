// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain keeps countrydata secrets in the OS credential store.
// The only secret today is the DSN of the development server's dataset, which may
// carry a database password and therefore never goes into the config file.
package keychain

import (
	"errors"
	"runtime"
	"sync"

	"github.com/99designs/keyring"
)

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("not found in keychain")

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "countrydata"

// KeyDatasetDSN is the key of the dataset DSN.
const KeyDatasetDSN = "dataset_dsn"

// Manager provides thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager opens the OS keyring.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If initialization fails, it is retried on the next call.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}
	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// openRing opens the OS keyring using native platform backends only; there is no
// encrypted-file fallback.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:     ServiceName,
		AllowedBackends: backendsFor(runtime.GOOS),
		PassPrefix:      ServiceName,
		WinCredPrefix:   ServiceName,
		KWalletAppID:    ServiceName,
		KWalletFolder:   ServiceName,
	}
	if len(cfg.AllowedBackends) == 0 {
		return nil, errors.New("secure storage is not supported on " + runtime.GOOS)
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if runtime.GOOS == "darwin" {
			return nil, errors.New("macOS Keychain unavailable. Install 'pass' as a fallback: brew install pass gnupg && gpg --generate-key && pass init <gpg-key-id>")
		}
		return nil, err
	}
	return ring, nil
}

func backendsFor(goos string) []keyring.BackendType {
	switch goos {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend}
	case "linux", "freebsd", "openbsd":
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
	return nil
}

// SaveDatasetDSN stores the dataset DSN.
func (m *Manager) SaveDatasetDSN(dsn string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ring.Set(keyring.Item{Key: KeyDatasetDSN, Data: []byte(dsn), Label: "countrydata dataset DSN"})
}

// LoadDatasetDSN retrieves the dataset DSN. It returns ErrNotFound when none is stored.
func (m *Manager) LoadDatasetDSN() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyDatasetDSN)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNotFound
	}
	return string(it.Data), nil
}

// ClearDataset removes the dataset DSN. Removing a missing key is not an error.
func (m *Manager) ClearDataset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.ring.Remove(KeyDatasetDSN)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}
