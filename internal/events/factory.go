package events

import (
	"fmt"

	"github.com/GaganMittal847/Companio/internal/config"
)

// FromConfig builds the publisher selected by events.driver.
func FromConfig(cfg config.EventsCfg) (Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		return Noop{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic), nil
	case "nats":
		return NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
