package client

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReloaderSwapsClients(t *testing.T) {
	first := &fakeService{items: fakeItems(1)}
	second := &fakeService{items: fakeItems(3)}

	services := []Service{first, second}
	r, err := NewReloader(func() (*Client, error) {
		svc := services[0]
		services = services[1:]
		return New(func() (Service, error) { return svc, nil })
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)

	set, err := r.Search(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, 1, set.TotalMatches)

	require.NoError(t, r.Reload())

	set, err = r.Search(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, 3, set.TotalMatches)
}

func TestReloaderKeepsOldClientOnFactoryFailure(t *testing.T) {
	calls := 0
	r, err := NewReloader(func() (*Client, error) {
		calls++
		if calls > 1 {
			return nil, fmt.Errorf("factory broke")
		}
		return New(func() (Service, error) { return &fakeService{items: fakeItems(2)}, nil })
	})
	require.NoError(t, err)
	t.Cleanup(r.Close)

	assert.Error(t, r.Reload())

	set, err := r.Search(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, 2, set.TotalMatches)
}

func TestReloaderInitialFactoryFailure(t *testing.T) {
	_, err := NewReloader(func() (*Client, error) { return nil, fmt.Errorf("nope") })
	assert.Error(t, err)
}
