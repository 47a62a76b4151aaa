// Package config defines the application configuration structure and
// provides loading from config files and environment variables.
package config
