// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package setmode

import (
	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.State
	commands.Output

	Mode uint32 `short:"m" long:"mode" base:"0" description:"boot mode, only the low 8 bits are stored" required:"true"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "boots the simulated device and changes the boot mode"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "The boot mode is kept by the always-on register: run 'hibernate' to keep it for the next boot."
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

	if _, err := ctx.SetBootMode(cmd.Mode); err != nil {
		return err
	}

	status := ctx.Status()
	return cmd.Print(status, status.Table)
}
