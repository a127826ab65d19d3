package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks at registration time that the address domain
// actually resolves: an MX record preferred, a plain host record accepted.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	host := email[at+1:]

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(host); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
