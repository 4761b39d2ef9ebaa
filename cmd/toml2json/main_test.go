// Copyright 2024 The toml-go Authors
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

package main

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

// runToml2json is the in-process entry point testscript re-execs the test
// binary as, exactly the way cue's own cmd/cue/cmd tests re-exec Main under
// the "cue" command name.
func runToml2json() int {
	if err := newRootCmd().Execute(); err != nil {
		return 1
	}
	return 0
}

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"toml2json": runToml2json,
	}))
}

// TestScript drives the toml2json binary exactly as the conformance harness
// it implements would: feed it a TOML document on stdin, compare its JSON
// projection (or failure) against the script's expectations.
func TestScript(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
