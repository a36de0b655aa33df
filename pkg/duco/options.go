package duco

import "time"

// ClientOptions contains configurable options for a DucoBox Client.
type ClientOptions struct {
	Host           string
	Port           int
	RequestTimeout time.Duration
}

// NewClientOptions will create a new ClientOptions type with some default
// values.
//
//	Host: duco.local
//	Port: 443
//	RequestTimeout: 10s
func NewClientOptions() *ClientOptions {
	return &ClientOptions{
		Host:           "duco.local",
		Port:           443,
		RequestTimeout: 10 * time.Second,
	}
}

// SetHost will set the address of the DucoBox Connectivity Board to connect.
func (o *ClientOptions) SetHost(host string) *ClientOptions {
	o.Host = host
	return o
}

// SetPort will set the port of the DucoBox REST API.
func (o *ClientOptions) SetPort(port int) *ClientOptions {
	o.Port = port
	return o
}

// SetRequestTimeout will set the timeout applied to every API request.
func (o *ClientOptions) SetRequestTimeout(timeout time.Duration) *ClientOptions {
	o.RequestTimeout = timeout
	return o
}
