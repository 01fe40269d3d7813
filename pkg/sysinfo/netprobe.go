/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: netprobe.go
Description: Internal address discovery. Opens a connected UDP socket toward a probe
address and reports the local address the kernel picked. No packets are sent.
*/

package sysinfo

import (
	"context"
	"fmt"
	"net"
)

// DefaultProbeAddress is only used for route selection
const DefaultProbeAddress = "8.8.8.8:80"

// UDPProbe implements interfaces.AddressResolver
type UDPProbe struct {
	Address string
	dialer  net.Dialer
}

// NewUDPProbe creates a probe toward address, or the default when empty
func NewUDPProbe(address string) *UDPProbe {
	if address == "" {
		address = DefaultProbeAddress
	}
	return &UDPProbe{Address: address}
}

// InternalIP returns the local IP used to reach the probe address
func (p *UDPProbe) InternalIP(ctx context.Context) (string, error) {
	conn, err := p.dialer.DialContext(ctx, "udp", p.Address)
	if err != nil {
		return "", fmt.Errorf("failed to open probe socket: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("unexpected local address type %T", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}
