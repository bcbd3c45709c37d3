package services

import (
	"context"
	"fmt"

	"github.com/GaganMittal847/Companio/internal/repository"
)

// IDGenerator renders counter values as human readable ids such as USER12.
type IDGenerator struct {
	counters repository.CounterRepository
	counter  string
	prefix   string
}

func NewIDGenerator(counters repository.CounterRepository, counter, prefix string) *IDGenerator {
	return &IDGenerator{counters: counters, counter: counter, prefix: prefix}
}

func NewUserIDGenerator(counters repository.CounterRepository) *IDGenerator {
	return NewIDGenerator(counters, "Signup", "USER")
}

func (g *IDGenerator) Next(ctx context.Context) (string, error) {
	n, err := g.counters.Next(ctx, g.counter)
	if err != nil {
		return "", fmt.Errorf("next %s id: %w", g.counter, err)
	}
	return fmt.Sprintf("%s%d", g.prefix, n), nil
}
