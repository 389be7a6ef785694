// Package secrets keeps the engine's two credentials (the scoring
// backend API key and the mail adapter's IMAP password) in the OS
// keychain instead of the config file.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups the engine's secrets in the OS keychain.
const KeyringService = "jobradar"

const (
	scoringAccount = "scoring-api-key"
	imapPrefix     = "imap:"
)

func GetScoringAPIKey() (string, error) {
	key, err := keyring.Get(KeyringService, scoringAccount)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(key) == "" {
		return "", errors.New("scoring API key is empty")
	}
	return key, nil
}

func SetScoringAPIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("scoring API key is empty")
	}
	return keyring.Set(KeyringService, scoringAccount, key)
}

func DeleteScoringAPIKey() error {
	return keyring.Delete(KeyringService, scoringAccount)
}

func GetIMAPPassword(username string) (string, error) {
	if strings.TrimSpace(username) == "" {
		return "", errors.New("imap username is empty")
	}
	pw, err := keyring.Get(KeyringService, imapPrefix+username)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(pw) == "" {
		return "", errors.New("imap password not set")
	}
	return pw, nil
}

func SetIMAPPassword(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return errors.New("imap username is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, imapPrefix+username, password)
}
