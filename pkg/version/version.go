// Package version provides the depviz tool version.
package version

// Version is the depviz tool version.
// Can be overridden at build time with:
//   go build -ldflags "-X github.com/ingo/depviz/pkg/version.Version=2.0.1"
var Version = "dev"
