package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_CountersIncrement(t *testing.T) {
	r := New()

	r.DatagramForwarded()
	r.DatagramForwarded()
	r.DatagramBroadcast()
	r.SetPluginsLoaded(3)
	r.ChatPipelineRun()

	assert.Equal(t, float64(2), testutil.ToFloat64(r.datagramsForwarded))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.datagramsBroadcast))
	assert.Equal(t, float64(3), testutil.ToFloat64(r.pluginsLoaded))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.chatPipelineRuns))
}

func TestRegistry_NilSafe(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.DatagramForwarded()
		r.DatagramBroadcast()
		r.SetPluginsLoaded(5)
		r.ChatPipelineRun()
	})
}
