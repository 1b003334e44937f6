package middleware

import (
	"log"
	"net"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseBlocklist turns CIDR ranges or bare addresses into networks,
// logging and skipping entries that do not parse
func ParseBlocklist(entries []string) []*net.IPNet {
	blocked := make([]*net.IPNet, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 32
				if ip.To4() == nil {
					bits = 128
				}
				entry = ip.String() + "/" + strconv.Itoa(bits)
			}
		}
		_, ipNet, err := net.ParseCIDR(entry)
		if err != nil {
			log.Printf("Ignoring invalid blocklist entry %q: %v", entry, err)
			continue
		}
		blocked = append(blocked, ipNet)
	}
	return blocked
}

// IPFilterMiddleware rejects clients in the blocklist with 403
func IPFilterMiddleware(blocklist []string) gin.HandlerFunc {
	blocked := ParseBlocklist(blocklist)

	return func(c *gin.Context) {
		if len(blocked) == 0 {
			c.Next()
			return
		}

		ip := net.ParseIP(clientIP(c))
		if ip == nil {
			c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
			return
		}

		for _, ipNet := range blocked {
			if ipNet.Contains(ip) {
				c.AbortWithStatusJSON(403, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Next()
	}
}
