// Copyright 2017-2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"fmt"
	"os"

	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.Output

	BlobPath string `short:"f" long:"file" description:"path to a kernel secdata blob" required:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints a kernel secdata blob"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return ""
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

	k, err := secdata.Parse(b)
	if err != nil {
		return fmt.Errorf("unable to parse '%s': %w", cmd.BlobPath, err)
	}

	return cmd.Print(k, k.Table)
}
