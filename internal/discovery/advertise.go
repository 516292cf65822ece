package discovery

import (
	"fmt"
	"os"
	"strings"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/userdeck/internal/logging"
)

// Advertisement is a running mDNS announcement
type Advertisement struct {
	server   *zeroconf.Server
	Instance string
	Port     int
}

// Shutdown withdraws the announcement
func (a *Advertisement) Shutdown() {
	if a == nil || a.server == nil {
		return
	}
	a.server.Shutdown()
	logging.Debug("Stopped advertising directory", zap.String("instance", a.Instance))
}

// InstanceName returns the default instance name for this host
func InstanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "userdeck-sandbox"
	}
	host, _, _ = strings.Cut(host, ".")
	return "userdeck-sandbox-" + host
}

// TXTRecords builds the TXT data announced with a directory
func TXTRecords(path, version string) []string {
	if path == "" {
		path = "/"
	}
	txt := []string{"path=" + path}
	if version != "" {
		txt = append(txt, "version="+version)
	}
	return txt
}

// Advertise announces a directory listening on port until Shutdown is called
func Advertise(instance string, port int, txt []string) (*Advertisement, error) {
	if instance == "" {
		instance = InstanceName()
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, txt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising directory",
		zap.String("instance", instance),
		zap.String("service", ServiceType),
		zap.Int("port", port),
	)

	return &Advertisement{server: server, Instance: instance, Port: port}, nil
}
