// Copyright 2024 The Vix Authors
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

package types

// Env is the lexical type environment of spec §3: a tree of scopes, each
// holding name -> Type, where lookup walks to the parent on miss
// (original_source/src/types.c's struct type_env / type_env_lookup).
type Env struct {
	parent *Env
	names  map[string]Type
}

// NewEnv returns a fresh root environment.
func NewEnv() *Env {
	return &Env{names: make(map[string]Type)}
}

// Child returns a new scope nested inside e.
func (e *Env) Child() *Env {
	return &Env{parent: e, names: make(map[string]Type)}
}

// Bind records name -> t directly in e (env_bind).
func (e *Env) Bind(name string, t Type) {
	e.names[name] = t
}

// Lookup walks e and its ancestors for name.
func (e *Env) Lookup(name string) (Type, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if t, ok := cur.names[name]; ok {
			return t, true
		}
	}
	return nil, false
}
