package configs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// SaveTOML saves a struct to a TOML file.
func SaveTOML(filePath string, data any) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0700); err != nil {
		return err
	}

	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteTOML(file, data)
}

// WriteTOML encodes a struct as TOML to w.
func WriteTOML(w io.Writer, data any) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	return enc.Encode(data)
}

// LoadTOML loads a TOML file into a struct. Keys that match no field are
// returned so callers can reject them.
func LoadTOML(filePath string, data any) ([]string, error) {
	md, err := toml.DecodeFile(filePath, data)
	if err != nil {
		return nil, err
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}
