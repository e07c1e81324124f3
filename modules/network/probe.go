package network

import (
	"errors"
	"net"
	"os"
	"time"

	"resty.dev/v3"

	"github.com/vk/helix/internal/feature"
)

// EnvLink overrides link detection: "down" reports no link, any other
// non-empty value reports one.
const EnvLink = "HELIX_NETWORK_LINK"

// LinkUpCondition reports whether a non-loopback interface is up with at
// least one address.
func LinkUpCondition() feature.Condition {
	return feature.Cond("link_up", linkUp)
}

func linkUp() bool {
	if v := os.Getenv(EnvLink); v != "" {
		return v != "down"
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// ReachabilityCondition reports whether the configured HTTP endpoint answers
// within the timeout. Server-side errors (5xx) count as unreachable; any
// well-formed answer below that proves the path works.
func ReachabilityCondition(endpoint string, timeout time.Duration) (feature.Condition, error) {
	if endpoint == "" {
		return nil, errors.New("network: reachability probe requires an endpoint")
	}

	return feature.Cond("reachability", func() bool {
		client := resty.New().SetTimeout(timeout)
		defer client.Close()

		res, err := client.R().Get(endpoint)
		return err == nil && res.StatusCode() < 500
	}), nil
}
