// Copyright 2026 The go-matbench Authors. SPDX-License-Identifier: Apache-2.0

package bench

import (
	"fmt"

	"github.com/ajroetker/go-matbench/bench/config"
	"github.com/ajroetker/go-matbench/mat/contrib/matmul"
)

// Case is one (strategy, worker count) combination.
type Case struct {
	Strategy string
	Workers  int
}

func (c Case) String() string {
	return fmt.Sprintf("%s/%d", c.Strategy, c.Workers)
}

// Plan lists the cases of a run: the sequential baseline first, then the
// partitioned and fork/join strategies for every configured worker count.
func Plan(cfg config.Config) []Case {
	cases := make([]Case, 0, 1+2*len(cfg.Workers))
	cases = append(cases, Case{Strategy: matmul.NameSequential, Workers: 1})
	for _, w := range cfg.Workers {
		cases = append(cases,
			Case{Strategy: matmul.NameExecutor, Workers: w},
			Case{Strategy: matmul.NameForkJoin, Workers: w},
		)
	}
	return cases
}
