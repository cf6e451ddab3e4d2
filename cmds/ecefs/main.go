// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ecefs inspects kernel secdata blobs and simulates the EC-EFS trust state
// of a controller kept in a state directory.
//
// Synopsis:
//     ecefs make -o BLOB (--hash HEX | --image EC_IMAGE) [options]
//     ecefs show -f BLOB [--format=json]
//     ecefs check -f BLOB
//     ecefs provision -s STATE_DIR -f BLOB
//     ecefs boot -s STATE_DIR [--format=json]
//     ecefs refresh -s STATE_DIR
//     ecefs set-mode -s STATE_DIR -m MODE
//     ecefs reset-mode -s STATE_DIR
//     ecefs hibernate -s STATE_DIR
//     ecefs poweroff -s STATE_DIR
//
// An example:
//     ecefs make -o secdata.bin --hash $(sha256sum ec.RW.bin | cut -d' ' -f1)
//     ecefs provision -s dev -f secdata.bin
//     ecefs set-mode -s dev -m 2
//     ecefs hibernate -s dev
//     ecefs boot -s dev   # boot mode is still 0x02
//     ecefs boot -s dev   # cold boot, boot mode is NORMAL
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/boot"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/check"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/hibernate"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/makeblob"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/poweroff"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/provision"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/refresh"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/resetmode"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/setmode"
	"github.com/linuxboot/ecefs/cmds/ecefs/commands/show"
	"github.com/linuxboot/ecefs/pkg/log"
)

func knownCommands() map[string]commands.Command {
	return map[string]commands.Command{
		"make":       &makeblob.Command{},
		"show":       &show.Command{},
		"check":      &check.Command{},
		"provision":  &provision.Command{},
		"boot":       &boot.Command{},
		"refresh":    &refresh.Command{},
		"set-mode":   &setmode.Command{},
		"reset-mode": &resetmode.Command{},
		"hibernate":  &hibernate.Command{},
		"poweroff":   &poweroff.Command{},
	}
}

func newParser() *flags.Parser {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands() {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}
	return flagsParser
}

func main() {
	// parse arguments and execute the appropriate command
	if _, err := newParser().Parse(); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		log.Fatalf("%v", err)
	}
}
