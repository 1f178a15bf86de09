// Package api handles incoming HTTP requests: decoding and validating
// payloads, calling the services, and turning results and errors into JSON
// responses. Error text from lower layers never reaches clients; it is
// mapped to a status code and a fixed message in errors.go.
package api
