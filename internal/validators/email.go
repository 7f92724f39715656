package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// DNSTimeout bounds the MX and A lookups done at registration.
var DNSTimeout = 3 * time.Second

// IsEmailDomainValid reports whether the domain of email has an MX record or,
// failing that, any address record.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := strings.TrimSuffix(email[at+1:], ".")

	ctx, cancel := context.WithTimeout(context.Background(), DNSTimeout)
	defer cancel()

	resolver := net.DefaultResolver
	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if addrs, err := resolver.LookupIPAddr(ctx, domain); err == nil && len(addrs) > 0 {
		return true
	}
	return false
}
