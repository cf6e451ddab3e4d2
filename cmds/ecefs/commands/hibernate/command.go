// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hibernate

import (
	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
	"github.com/linuxboot/ecefs/pkg/resetcause"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	commands.State

	LeaveAPOff bool `long:"leave-ap-off" description:"keep the AP off on wake"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "puts the simulated device into hibernate"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "The next command run on the device is a wake from hibernate: the always-on register is kept."
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

	opts := resetcause.WakeFromHibernate
	if cmd.LeaveAPOff {
		opts |= resetcause.LeaveAPOff
	}
	return dev.Tracker().Save(0, opts)
}
