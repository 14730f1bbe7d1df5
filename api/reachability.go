package api

import (
	"context"
	"net"
)

// Reachable reports whether a TCP connection to the API host can be opened
// within the reachability timeout. It is the precheck run before sign-up and login.
func (c *Client) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, c.reachTimeout)
	defer cancel()

	addr := c.hostPort()
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		c.log.Debug().Err(err).Str("addr", addr).Msg("api host unreachable")
		return false
	}
	conn.Close()
	return true
}

func (c *Client) hostPort() string {
	if c.baseURL.Port() != "" {
		return c.baseURL.Host
	}
	port := "443"
	if c.baseURL.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(c.baseURL.Hostname(), port)
}
