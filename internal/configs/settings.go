package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/tdmigrate/internal/utils"
)

type ToolSettings struct {
	ConfigPath string
	AuditPath  string
	Username   string
	Hostname   string
}

var Settings *ToolSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	// Audit entries carry the user and host; missing values only leave
	// those fields empty.
	username, _ := utils.GetUsername()
	hostname, _ := utils.GetHostname()

	Settings = &ToolSettings{
		ConfigPath: filepath.Join(configDir, "tdmigrate", "config.toml"),
		AuditPath:  filepath.Join(dataDir, "tdmigrate", "audit.jsonl"),
		Username:   username,
		Hostname:   hostname,
	}
}
