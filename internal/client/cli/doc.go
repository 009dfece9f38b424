// Package cli implements the interactive storefront shell.
package cli
