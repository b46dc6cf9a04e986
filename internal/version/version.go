package version

// Version is the build version, set at link time with -ldflags "-X ...version.Version=<tag>".
var Version = "dev"
