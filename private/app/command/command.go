// Copyright 2024 The babeld Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package command contains subcommands shared by the daemon binaries.
package command

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/babelrouting/babeld/private/config"
)

// Pather returns the command path of the parent command.
type Pather interface {
	CommandPath() string
}

// NewSample returns a command that writes a sample configuration file for
// cfg to stdout. The id is used as the sample instance identifier.
func NewSample(pather Pather, cfg config.Sampler, id string) *cobra.Command {
	return &cobra.Command{
		Use:     "sample",
		Short:   "Display sample configuration file",
		Example: "  " + pather.CommandPath() + " sample > babeld.toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			WriteSample(cmd.OutOrStdout(), cfg, id)
			return nil
		},
	}
}

// WriteSample writes the sample of cfg to dst.
func WriteSample(dst io.Writer, cfg config.Sampler, id string) {
	if dst == nil {
		dst = os.Stdout
	}
	cfg.Sample(dst, nil, config.CtxMap{config.ID: id})
}
