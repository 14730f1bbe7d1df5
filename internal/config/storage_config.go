package config

import (
	"os"
	"path/filepath"
)

const (
	credentialsFileVar   = "CREDENTIALS_FILE"
	credentialsSecretVar = "CREDENTIALS_SECRET"

	// CredentialsRecordName is the name of the single persisted session record.
	CredentialsRecordName = "app_prefs"
)

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetCredentialsFile() string {
	if file := GetEnv(credentialsFileVar, ""); file != "" {
		return file
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "go-auth-client", CredentialsRecordName+".json")
}

// GetCredentialsSecret returns the secret used to seal the record at rest.
// Empty means the record is stored as plain JSON.
func (Storage) GetCredentialsSecret() string {
	return GetEnv(credentialsSecretVar, "")
}
