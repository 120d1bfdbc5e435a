// Package libkatatsuki binds the native track_data library through cgo.
//
// The binding is compiled only with the katatsuki build tag and cgo
// enabled:
//
//	go build -tags katatsuki ./...
//
// The library is located with pkg-config under the name katatsuki. Without
// the tag this package is empty and importing it registers nothing, so the
// registry falls back to the pure-Go engine.
package libkatatsuki
