package configs

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data to a TOML file created with the given permissions.
func SaveTOML(filePath string, data interface{}, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer file.Close()

	// OpenFile only applies perm on creation.
	if err := file.Chmod(perm); err != nil {
		return err
	}

	return toml.NewEncoder(file).Encode(data)
}

// LoadTOML loads a TOML file into a struct.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
