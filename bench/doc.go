// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

// Package bench drives the matrix multiplication benchmark: it expands the
// configuration into cases, times each strategy with warmup and measured
// iterations, summarizes the samples and persists them.
//
// Results go to flat files in the results directory:
//
//	times.txt        implementation,threads,iteration,time rows plus "# ..." summaries
//	system_info.txt  run metadata (date, size, processors, Go runtime, CPU features)
//	metrics.prom     Prometheus text exposition, when metrics are enabled
package bench
