// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package poweroff

import (
	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.State
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "removes all power from the simulated device"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "The always-on register is lost; the protected storage is kept."
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
	return dev.PowerOff()
}
