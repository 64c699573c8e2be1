// Package config loads and validates gateway configuration.
//
// Configuration comes from a YAML file with environment variable
// overrides for deployment-specific values and secrets (DEVIOT_* pattern).
// See configs/config.example.yaml for a complete annotated example.
//
// Load order: hardcoded defaults, then the YAML file, then environment
// variables. Validation runs last, so an invalid override fails startup
// the same way an invalid file does.
package config
