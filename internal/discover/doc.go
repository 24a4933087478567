// Package discover resolves the two addresses the platform installer
// needs: the container bridge IP and the host's routable IPv4.
//
// Different distro and Docker versions expose different tooling, so the
// bridge lookup tries an ordered list of strategies (iproute2, legacy
// ifconfig, the daemon configuration file, a live network inspect) and
// takes the first one that yields a value.
package discover
