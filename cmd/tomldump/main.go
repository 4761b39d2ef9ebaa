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

// Command tomldump is a developer-facing debug tool: it parses a TOML
// file and prints either its canonical textual rendering or, with
// --tree, the raw intermediate parse tree the parser package builds
// before conversion to value.Value.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/repr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	toml "github.com/anttikivi/toml-go"
	"github.com/anttikivi/toml-go/errors"
	"github.com/anttikivi/toml-go/parser"
	"github.com/anttikivi/toml-go/token"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		tree    bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "tomldump <file>",
		Short:        "Parse a TOML file and dump its decoded value or intermediate tree",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose)
			return dump(args[0], tree, log)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "dump the raw intermediate parse tree instead of the decoded value")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log each decode phase to stderr")
	return cmd
}

func newLogger(verbose bool) logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}

func dump(path string, tree bool, log logrus.FieldLogger) error {
	start := time.Now()
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"phase": "read", "bytes": len(src)}).Debug("read input file")

	if !tree {
		v, diag, err := toml.ParseWithDiagnostics(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, diag.Format())
			return err
		}
		log.WithFields(logrus.Fields{"phase": "decode", "duration": time.Since(start)}).Debug("decoded document")
		fmt.Println(v.Format())
		return nil
	}

	file := token.NewFile(path, len(src))
	var errs errors.List
	p := parser.New(file, src, &errs)
	defer p.Release()
	log.WithFields(logrus.Fields{"phase": "parse"}).Debug("starting parse")

	root, perr := p.Parse()
	if perr != nil {
		diag := errors.NewDiagnostics(perr, file, src)
		fmt.Fprintln(os.Stderr, diag.Format())
		return perr
	}
	log.WithFields(logrus.Fields{"phase": "parse", "duration": time.Since(start)}).Debug("parse complete")

	repr.Println(root)
	return nil
}
