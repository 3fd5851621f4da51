package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Bootstrap errors
	ErrBootstrapFailed = fmt.Errorf("runtime bootstrap failed")

	// Audio pipeline errors
	ErrUnsupportedInput = fmt.Errorf("unsupported file type")
	ErrLookupFailed     = fmt.Errorf("metadata lookup failed")
	ErrTagWrite         = fmt.Errorf("tag write failed")

	// Remote copy errors
	ErrNoServers      = fmt.Errorf("no selectable servers in SSH config")
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrTransferFailed = fmt.Errorf("transfer failed")

	// Dialog errors
	ErrCancelled = fmt.Errorf("cancelled by user")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
