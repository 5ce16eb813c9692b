package server

// Route constants for the HTTP surface.
const (
	// PingEndpoint is a trivial health check.
	PingEndpoint = "/ping"
	// BlobEndpoint accepts a raw blob hex string in the request body and
	// responds with the decoded state-diff document as JSON.
	BlobEndpoint = "/blob"
)
