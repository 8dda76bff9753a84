package main

// Exit codes for the CLI
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitConfigError     = 2
	ExitNotFound        = 3
	ExitRateLimited     = 4
	ExitRemoteError     = 5
	ExitInvalidArgument = 6
)
