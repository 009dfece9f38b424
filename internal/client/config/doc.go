// Package config loads the storefront CLI settings.
//
// Sources are layered, later ones winning: built-in defaults, an optional
// JSON file (-c/--config), a .env file in the working directory, the
// STOREFRONT_* environment and finally command-line flags.
package config
