package openapi

import (
	"log/slog"

	"golang.org/x/text/message"
)

// DefaultRequestIDHeader is the response header carrying the request id.
const DefaultRequestIDHeader = "X-Request-ID"

// Option configures a Spec.
type Option func(*Spec)

// WithLogger sets the logger receiving registration records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spec) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithServers adds servers to the document.
//
// See: https://spec.openapis.org/oas/v3.0.3#server-object
func WithServers(servers ...Server) Option {
	return func(s *Spec) {
		s.servers = append(s.servers, servers...)
	}
}

// WithMessages translates generated descriptions, such as the description
// of response codes, with p.
func WithMessages(p *message.Printer) Option {
	return func(s *Spec) {
		s.printer = p
	}
}

// WithRequestIDHeader sets the name of the request id header documented on
// every response. An empty name disables the header.
func WithRequestIDHeader(name string) Option {
	return func(s *Spec) {
		s.requestIDHeader = name
	}
}
