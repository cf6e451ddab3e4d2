// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provision

import (
	"fmt"
	"os"

	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.State

	BlobPath string  `short:"f" long:"file" description:"path to the blob to store" required:"true"`
	Index    *uint32 `long:"index" base:"0" description:"protected storage index (default: kernel secdata index)"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "stores a blob in the simulated protected storage"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "The blob is stored as is, invalid blobs included."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}

	b, err := os.ReadFile(cmd.BlobPath)
	if err != nil {
		return fmt.Errorf("unable to read '%s': %w", cmd.BlobPath, err)
	}

	dev, err := cmd.Device()
	if err != nil {
		return err
	}

	index := uint32(secdata.KernelNVIndex)
	if cmd.Index != nil {
		index = *cmd.Index
	}
	return dev.Store.Write(index, b)
}
