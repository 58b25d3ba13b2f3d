// Package config manages the gameshelf configuration file
// (~/.gameshelf/config.yaml) through Viper, and validates it against an
// embedded JSON schema.
package config
