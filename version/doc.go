// Package version exposes build metadata for the tasklist binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/tasklist/version.Version=1.2.3 \
//	  -X github.com/ncobase/tasklist/version.Branch=main \
//	  -X github.com/ncobase/tasklist/version.Revision=abc123 \
//	  -X github.com/ncobase/tasklist/version.BuiltAt=2024-01-15T10:30:00Z" ./cmd/tasklist
//
// Without ldflags the revision and build time fall back to the VCS stamp the Go
// toolchain embeds in module builds.
package version
