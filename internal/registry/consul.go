// Package registry registers the service with Consul when configured.
package registry

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

type Registration struct {
	client *api.Client
	id     string
	logger *zap.SugaredLogger
}

type Options struct {
	Addr        string
	ServiceName string
	ServiceHost string
	Port        int
	HealthPath  string
}

// ServiceID is unique per host and port so several instances can share a
// Consul agent.
func ServiceID(o Options) string {
	return o.ServiceName + "-" + o.ServiceHost + "-" + strconv.Itoa(o.Port)
}

func ServiceDefinition(o Options) *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      ServiceID(o),
		Name:    o.ServiceName,
		Address: o.ServiceHost,
		Port:    o.Port,
		Tags:    []string{"http", "companio"},
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", o.ServiceHost, o.Port, o.HealthPath),
			Interval:                       "10s",
			Timeout:                        "2s",
			DeregisterCriticalServiceAfter: "1m",
		},
	}
}

// Register returns nil, nil when no Consul address is configured.
func Register(o Options, logger *zap.SugaredLogger) (*Registration, error) {
	if o.Addr == "" {
		return nil, nil
	}
	cfg := api.DefaultConfig()
	cfg.Address = o.Addr
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	reg := ServiceDefinition(o)
	if err := client.Agent().ServiceRegister(reg); err != nil {
		return nil, err
	}
	logger.Infow("registered with consul", "id", reg.ID, "addr", o.Addr)
	return &Registration{client: client, id: reg.ID, logger: logger}, nil
}

func (r *Registration) Deregister() {
	if r == nil {
		return
	}
	if err := r.client.Agent().ServiceDeregister(r.id); err != nil {
		r.logger.Warnw("consul deregister failed", "id", r.id, "error", err)
	}
}
