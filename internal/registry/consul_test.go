package registry

import (
	"testing"

	"github.com/GaganMittal847/Companio/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDefinition(t *testing.T) {
	o := Options{ServiceName: "companio", ServiceHost: "10.0.0.5", Port: 3000, HealthPath: "/cms/health"}
	reg := ServiceDefinition(o)
	assert.Equal(t, "companio-10.0.0.5-3000", reg.ID)
	assert.Equal(t, 3000, reg.Port)
	require.NotNil(t, reg.Check)
	assert.Equal(t, "http://10.0.0.5:3000/cms/health", reg.Check.HTTP)
}

func TestRegisterDisabled(t *testing.T) {
	r, err := Register(Options{}, logger.Nop())
	assert.NoError(t, err)
	assert.Nil(t, r)
	r.Deregister()
}
