package pricesync

import "time"

const (
	defaultInterval = time.Hour
	minimumInterval = time.Second
)

type Config struct {
	// File is the JSON price list, a flat object of grade name to unit
	// price, e.g. {"diesel": "17.50"}.
	File     string
	Interval time.Duration
}

func (c Config) withDefaults() Config {
	if c.Interval < minimumInterval {
		c.Interval = defaultInterval
	}
	return c
}
