package main

// Version information - set by ldflags during build
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	Execute()
}
