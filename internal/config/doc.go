// Package config loads pdemeta settings from an optional .pdemeta.yml in the
// scan root, a .env file and PDEMETA_* environment variables, in increasing
// order of precedence. Every key has a default, so no file is required.
package config
