package store

import "fmt"

// Open picks a backend by driver name: "redis" or "postgres".
func Open(driver, redisURL, connString string) (Store, error) {
	switch driver {
	case "redis":
		return OpenRedis(redisURL)
	case "postgres":
		return OpenPostgres(connString)
	default:
		return nil, fmt.Errorf("unknown store driver %q", driver)
	}
}
