// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/ndview/internal/tensor"

// Backend defines the interface that all compute backends must implement.
// Backends own data movement; indexing and broadcasting only compute
// metadata and never call a backend.
//
// Implementations:
//   - backend/cpu: pure Go strided kernels
//   - backend/webgpu: WebGPU compute shaders (Windows)
//
// Example:
//
//	import (
//	    "github.com/born-ml/ndview/backend/cpu"
//	    "github.com/born-ml/ndview/tensor"
//	)
//
//	engine, _ := tensor.NewEngine(tensor.WithBackend(cpu.New()))
//	y, _ := engine.TakeInts(x, []int{2, 0}, nil, 1)
type Backend interface {
	// Data movement.
	ReadStrided(x *RawTensor) ([]byte, error)              // Pack addressed elements row-major.
	WriteStrided(x *RawTensor, data []byte) error          // Scatter packed bytes into x.
	Cast(x *RawTensor, dtype DataType) (*RawTensor, error) // Convert into a new array.

	// Indexing kernels.
	Gather(p *GatherPlan) (*RawTensor, error) // Take along one axis.
	Select(p *SelectPlan) (*RawTensor, error) // Elementwise where.

	// Completion.
	Synchronize() error // Block until enqueued work is done.

	// Metadata.
	Name() string   // Backend name (e.g., "CPU", "WebGPU").
	Device() Device // Device token arrays are tagged with.
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)

// Operand describes how an array is read in a plan's output index space.
type Operand = tensor.Operand

// GatherPlan is the data movement of a take.
type GatherPlan = tensor.GatherPlan

// SelectPlan is the data movement of a where.
type SelectPlan = tensor.SelectPlan
