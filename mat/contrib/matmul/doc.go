// Copyright 2026 The go-matbench Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package matmul provides dense square matrix multiplication under three
// execution strategies, all behind the Multiplier interface:
//
//   - Sequential: the i-j-k triple loop on the calling goroutine. This is the
//     correctness baseline.
//   - Executor: rows are split into one contiguous Range per worker up front
//     (see Partition) and computed on a workerpool.Pool created for the call.
//   - ForkJoin: the row range is halved recursively until it is at most
//     Threshold rows long; sibling halves are forked onto a WorkersPool bounded
//     by the configured parallelism and joined before the split returns.
//
// Example usage:
//
//	a, _ := mat.Generate(1024)
//	b, _ := mat.Generate(1024)
//
//	m, _ := matmul.New(matmul.NameForkJoin, 8)
//	c, err := m.Multiply(a, b)
//
// Every strategy accumulates each output cell in the same order, so the
// parallel strategies return results identical to Sequential. Workers write
// disjoint rows of C and never need a lock. A failing unit of work (error or
// panic) is reported from Multiply as a *TaskError and no partial C is
// returned. Pools are released before Multiply returns on every path.
package matmul
