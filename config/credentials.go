// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/99designs/keyring"
	"github.com/joho/godotenv"
)

const keyringService = "go-imap-correspondents"

// KeyringOpener defers opening the system keyring until a password actually lives there.
type KeyringOpener func() (keyring.Keyring, error)

func OpenKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: keyringService,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/" + keyringService + "/credentials",
		FilePasswordFunc:         keyring.TerminalPrompt,
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("could not open keyring: %w", err)
	}
	return ring, nil
}

// LoadEnv loads a .env file next to the config file into the environment if there is one.
// Variables already set take precedence.
func LoadEnv(configFile string) error {
	envFile := filepath.Join(filepath.Dir(configFile), ".env")
	_, err := os.Stat(envFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	err = godotenv.Load(envFile)
	if err != nil {
		return fmt.Errorf("could not load %s: %w", envFile, err)
	}
	return nil
}

// ResolvePassword returns the first password found in the account's literal Password,
// the environment variable PasswordEnv or the keyring entry named after the address.
func (a *Account) ResolvePassword(openKeyring KeyringOpener) (string, error) {
	if len(a.Password) > 0 {
		return a.Password, nil
	}

	if len(a.PasswordEnv) > 0 {
		if password := os.Getenv(a.PasswordEnv); len(password) > 0 {
			return password, nil
		}
	}

	if a.PasswordKeyring {
		ring, err := openKeyring()
		if err != nil {
			return "", err
		}

		item, err := ring.Get(a.Address)
		if err != nil {
			return "", fmt.Errorf("could not get password of %s from keyring: %w", a.Address, err)
		}
		return string(item.Data), nil
	}

	return "", fmt.Errorf("no password for account %s, set Password, PasswordEnv or PasswordKeyring", a.Address)
}
