// Package version reports the catalog build identity. Values injected via
// ldflags take priority; otherwise runtime/debug.BuildInfo fills in the
// module version and VCS metadata.
package version
