package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Service represents a sandbox user directory announced on the network
type Service struct {
	// Instance is the advertised instance name (e.g., "userdeck-sandbox-laptop")
	Instance string

	// Hostname is the mDNS hostname (e.g., "laptop.local.")
	Hostname string

	// IP is the address to connect to, IPv4 when one was announced
	IP string

	// Port is the HTTP port
	Port int

	// Metadata contains the TXT record data
	// Common fields: "path=/", "version=0.3.0"
	Metadata map[string]string

	// DiscoveredAt is when the service was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the service
func (s *Service) String() string {
	return fmt.Sprintf("userdeck directory %s (%s) at %s", s.Instance, s.Hostname, net.JoinHostPort(s.IP, strconv.Itoa(s.Port)))
}

// BaseURL returns the directory base URL, including any announced path
func (s *Service) BaseURL() string {
	base := "http://" + net.JoinHostPort(s.IP, strconv.Itoa(s.Port))
	if path := strings.TrimRight(s.GetMetadata("path"), "/"); path != "" {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		base += path
	}
	return base
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (s *Service) GetMetadata(key string) string {
	if s.Metadata == nil {
		return ""
	}
	return s.Metadata[key]
}
