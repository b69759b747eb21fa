// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"

	"github.com/BurntSushi/toml"

	"github.com/matrixorigin/orderedkey/pkg/logutil"
)

var (
	ErrUnknownEngine = errors.New("unknown store engine")
)

const (
	EngineMemory = "memory"
	EnginePebble = "pebble"
)

// StoreParameters of the sorted store
type StoreParameters struct {
	// Engine selects the store backend. memory or pebble. default: memory
	Engine string `toml:"engine"`

	// DataDir is the pebble directory. default: orderedkey-data
	DataDir string `toml:"data-dir"`
}

// Parameters of the key tool
type Parameters struct {
	Store StoreParameters `toml:"store"`

	Log logutil.LogConfig `toml:"log"`
}

// NewDefaultParameters returns the parameters with the defaults
// filled in.
func NewDefaultParameters() *Parameters {
	return &Parameters{
		Store: StoreParameters{
			Engine:  EngineMemory,
			DataDir: "orderedkey-data",
		},
		Log: logutil.LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadParameters overlays the toml file at path on the defaults.
// An empty path keeps the defaults.
func LoadParameters(path string) (*Parameters, error) {
	params := NewDefaultParameters()
	if path == "" {
		return params, nil
	}
	if _, err := toml.DecodeFile(path, params); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

func (params *Parameters) Validate() error {
	switch params.Store.Engine {
	case EngineMemory, EnginePebble:
		return nil
	}
	return ErrUnknownEngine
}
