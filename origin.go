package baucua

import "strings"

// Origins is the set of browser origins allowed to talk to the server.
type Origins []string

// Allows reports whether origin may connect. Requests without an Origin header come from other
// servers or curl and are always let through.
func (o Origins) Allows(origin string) bool {
	if origin == "" {
		return true
	}
	origin = strings.TrimSuffix(origin, "/")
	for _, allowed := range o {
		if origin == allowed {
			return true
		}
	}
	return false
}
