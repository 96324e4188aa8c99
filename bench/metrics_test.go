// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	m.SetSize(64)
	m.Observe(Case{"executor", 2}, 10*time.Millisecond)
	m.Observe(Case{"executor", 2}, 12*time.Millisecond)
	m.Observe(Case{"forkjoin", 2}, 9*time.Millisecond)
	m.Failure(Case{"forkjoin", 4})

	require.Equal(t, 2, testutil.CollectAndCount(m.duration))
	require.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("forkjoin", "4")))
	require.Equal(t, 64.0, testutil.ToFloat64(m.size))

	path := filepath.Join(t.TempDir(), MetricsFile)
	require.NoError(t, m.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `matbench_multiply_duration_seconds_count{strategy="executor",workers="2"} 2`)
	require.Contains(t, string(data), "matbench_matrix_size 64")
}
