// Package discovery finds and announces userdeck sandbox directories using
// multicast DNS.
//
// "userdeck serve --advertise" registers a "_userdeck._tcp" service; "userdeck
// scan" and the --discover flag browse for it so that a client on the same
// network can connect without knowing the address.
//
// # Discovery Process
//
//  1. Broadcasts mDNS queries for "_userdeck._tcp" on the local network
//  2. Collects every answering instance once, preferring IPv4 addresses
//  3. Reads the TXT records (path, version) into metadata
//  4. Returns the services found when the timeout expires
//
// # Usage Example
//
//	services, err := discovery.Scan(ctx, 3*time.Second)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, svc := range services {
//	    fmt.Println(svc.Instance, svc.BaseURL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Both ends must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
//
// # Thread Safety
//
// Scans do not share state. Multiple scans can run at once.
package discovery
