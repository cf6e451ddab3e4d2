// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resetmode

import (
	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.State
	commands.Output
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "boots the simulated device and sets the boot mode back to NORMAL"
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

	dev, err := cmd.Device()
	if err != nil {
		return err
	}
	ctx, err := dev.Boot()
	if err != nil {
		return err
	}

	if err := ctx.Reset(); err != nil {
		return err
	}

	status := ctx.Status()
	return cmd.Print(status, status.Table)
}
