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

// Command vix drives the compiler pipeline end to end: scan, parse,
// resolve, order, infer, lower, and emit QBE-shaped IR text for a single
// source file, per spec §6's command-line interface.
package main

import "os"

func main() {
	os.Exit(Main(os.Args[1:]))
}
