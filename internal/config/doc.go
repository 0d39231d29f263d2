// Package config loads runtime settings for the portalroom CLI and server.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, a JSON file named by -c/-config, environment variables
// (optionally read from a .env file) and finally command-line flags.
// Malformed input panics, as configuration errors are fatal at startup.
package config
