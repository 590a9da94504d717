// Package data provides the embedded default catalog and display palette.
package data

import "embed"

// dataFS embeds the configuration files from the data directory at build time.
//
//go:embed *.json *.txt
var dataFS embed.FS

// FS returns the embedded filesystem containing game data.
func FS() embed.FS {
	return dataFS
}
