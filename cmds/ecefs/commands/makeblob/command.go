// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package makeblob

import (
	"fmt"
	"os"

	"github.com/linuxboot/ecefs/cmds/ecefs/commands"
	"github.com/linuxboot/ecefs/pkg/flashmap"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

var _ commands.Command = (*Command)(nil)

type Command struct {
	OutputPath     string `short:"o" long:"output" description:"path to the kernel secdata file to write" required:"true"`
	Hash           string `long:"hash" description:"EC-RW SHA-256 digest, hex encoded"`
	ImagePath      string `long:"image" description:"compute the digest from the RW area of this EC image"`
	Area           string `long:"area" default:"EC_RW" description:"FMAP area holding the RW firmware"`
	KeepErased     bool   `long:"keep-erased" description:"hash the trailing erased bytes of the area too"`
	KernelVersions uint32 `long:"kernel-versions" base:"0" description:"kernel rollback versions"`
	StructVersion  *uint8 `long:"struct-version" base:"0" description:"override the struct version (the CRC is computed afterwards)"`
	CorruptCRC     bool   `long:"corrupt-crc" description:"store a wrong CRC"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "creates a kernel secdata blob"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Creates a v1.0 kernel secdata blob carrying the given EC hash, " +
		"or the hash of the RW area of an EC image found through its FMAP. " +
		"--struct-version and --corrupt-crc produce invalid blobs for testing."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if err := commands.NoExtraArgs(args); err != nil {
		return err
	}

	hash, err := cmd.digest()
	if err != nil {
		return err
	}

	k := secdata.NewKernel(hash, cmd.KernelVersions)
	if cmd.StructVersion != nil {
		k.StructVersion = *cmd.StructVersion
		k.Seal()
	}
	if cmd.CorruptCRC {
		k.CRC8 = ^k.CRC8
	}

	if err := os.WriteFile(cmd.OutputPath, k.Bytes(), 0o644); err != nil {
		return fmt.Errorf("unable to write '%s': %w", cmd.OutputPath, err)
	}
	return nil
}

func (cmd *Command) digest() (secdata.Digest, error) {
	switch {
	case cmd.Hash != "" && cmd.ImagePath != "":
		return secdata.Digest{}, commands.ErrArgs{Err: fmt.Errorf("--hash and --image are mutually exclusive")}
	case cmd.Hash != "":
		hash, err := secdata.ParseDigest(cmd.Hash)
		if err != nil {
			return secdata.Digest{}, commands.ErrArgs{Err: err}
		}
		return hash, nil
	case cmd.ImagePath != "":
		image, err := os.ReadFile(cmd.ImagePath)
		if err != nil {
			return secdata.Digest{}, fmt.Errorf("unable to read '%s': %w", cmd.ImagePath, err)
		}
		hash, err := flashmap.Digest(image, cmd.Area, !cmd.KeepErased)
		if err != nil {
			return secdata.Digest{}, fmt.Errorf("unable to hash '%s': %w", cmd.ImagePath, err)
		}
		return hash, nil
	}
	return secdata.Digest{}, commands.ErrArgs{Err: fmt.Errorf("either --hash or --image is required")}
}
