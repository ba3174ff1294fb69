// Package configs manages the tdmigrate configuration file.
//
// The configuration is a TOML file at $XDG_CONFIG_HOME/tdmigrate/config.toml
// (the platform config directory elsewhere). Every key is optional:
//
//	[installation]
//	id = "0b0f..."            # generated by `tdmigrate config init`
//
//	[migration]
//	format_version = 2000000  # container version assumed for inputs
//	cache_max_data_size = 0   # 0 keeps the built-in 10 MiB threshold
//	custom_day_background = false
//	environment = "production"
//
//	[output]
//	format = "toml"           # or "json"
//	directory = ""            # empty writes next to each input
//
//	[audit]
//	enabled = true
//
// Command-line flags override the values read here. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
//
// Settings holds the resolved file locations and is initialized at
// startup.
package configs
