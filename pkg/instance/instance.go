package instance

import (
	"os"

	"github.com/angelmondragon/rocketcart/pkg/env"
)

// GetID identifies this process in logs: ROCKETCART_INSTANCE_ID, else the hostname.
func GetID() string {
	if id := env.Get("ROCKETCART_INSTANCE_ID", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
