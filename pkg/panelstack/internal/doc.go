// Package internal contains shared infrastructure for panelstack: logging,
// theming and corner mask rasterization.
// Types and functions in this package are not part of the public API.
package internal
