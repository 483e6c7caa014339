package pkg

import (
	"net"
	"net/http"
	"regexp"
	"strings"
)

var (
	localDockerIpRegex = regexp.MustCompile(`^172\.\d{1,3}\.0\.1$`)
)

func IPIsLocal(ip string) bool {
	// used in local development ?
	if ip == "127.0.0.1" || ip == "::1" {
		return true
	}

	// user within docker container ?
	return localDockerIpRegex.MatchString(ip)
}

// ReadUserIP returns the client address of the request, honoring the headers
// set by the reverse proxy. Local and docker addresses collapse to "localhost".
func ReadUserIP(r *http.Request) string {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		// first entry is the original client
		ipAddr, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}
	ipAddr = strings.TrimSpace(ipAddr)

	if host, _, err := net.SplitHostPort(ipAddr); err == nil {
		ipAddr = host
	}

	if IPIsLocal(ipAddr) {
		return "localhost"
	}
	return ipAddr
}
