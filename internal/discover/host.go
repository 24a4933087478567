package discover

import (
	"net"

	"preflight/pkg/logging"
)

// interfaceAddrs is a variable to allow mocking in tests.
var interfaceAddrs = net.InterfaceAddrs

// HostAddress returns the first non-loopback IPv4 address across all
// interface records, in the order the OS reports them. The empty string
// means no such address exists.
func HostAddress() string {
	addrs, err := interfaceAddrs()
	if err != nil {
		logging.Error(discoverSubsystem, err, "Failed to enumerate interface addresses")
		return ""
	}

	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}
		if ip.IsLoopback() {
			continue
		}
		if ip4 := ip.To4(); ip4 != nil {
			logging.Info(discoverSubsystem, "Host address %s", ip4)
			return ip4.String()
		}
	}
	return ""
}
