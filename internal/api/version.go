// Package api provides the HTTP handlers of the sector.
package api

// ServiceName is reported by the status endpoints.
const ServiceName = "forbidden-sector"

// Capabilities lists the features this server exposes.
var Capabilities = []string{
	"static",
	"sessions",
	"challenges",
	"basic-auth",
}

// StatusResponse is the response from the /status endpoint.
type StatusResponse struct {
	Status       string   `json:"status"`
	Service      string   `json:"service"`
	Store        string   `json:"store"`
	Degraded     bool     `json:"degraded,omitempty"`
	Capabilities []string `json:"capabilities,omitempty"`
}
