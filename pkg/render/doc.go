// Package render defines the contract shared by output renderers and the
// registry used to select them by name.
package render
