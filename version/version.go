package version

// Version is the lttng-gen release version. It is overridden at link time
// with -ldflags "-X github.com/xll-gen/lttng-gen/version.Version=...".
var Version = "0.1.0-dev"
