// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// secdatainfo prints a kernel secdata structure, read from a file or from
// the NV space of a TPM.
//
// Synopsis:
//     secdatainfo [-j] FILE
//     secdatainfo [-j] --tpm /dev/tpmrm0 [--index 0x1008]
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/ecefs/pkg/log"
	"github.com/linuxboot/ecefs/pkg/protstore"
	"github.com/linuxboot/ecefs/pkg/secdata"
)

var (
	flagJSON   = flag.BoolP("json", "j", false, "Output as JSON")
	flagTPM    = flag.String("tpm", "", "Read the structure from the TPM device at this path")
	flagIndex  = flag.Uint32("index", secdata.KernelNVIndex, "NV index of the structure")
	flagVerify = flag.Bool("verify", false, "Exit with an error if the structure is invalid")
)

func readFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read input file: %w", err)
	}
	return b, nil
}

func readStore(store protstore.Store, index uint32) ([]byte, error) {
	b, err := store.Read(index, secdata.KernelSize)
	if err != nil {
		return nil, fmt.Errorf("cannot read NV index %#x: %w", index, err)
	}
	return b, nil
}

func run(w io.Writer, b []byte, asJSON, verify bool) error {
	k, err := secdata.Parse(b)
	if err != nil {
		return err
	}

	if asJSON {
		j, err := json.MarshalIndent(k, "", "    ")
		if err != nil {
			return fmt.Errorf("cannot marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(j))
	} else {
		fmt.Fprint(w, k.Summary())
	}

	if verify {
		return k.Validate()
	}
	return nil
}

func main() {
	flag.Parse()

	var (
		b   []byte
		err error
	)
	switch {
	case *flagTPM != "":
		tpm, closer, openErr := protstore.OpenTPM(*flagTPM)
		if openErr != nil {
			log.Fatalf("%v", openErr)
		}
		b, err = readStore(tpm, *flagIndex)
		closer.Close()
	case flag.Arg(0) != "":
		b, err = readFile(flag.Arg(0))
	default:
		err = errors.New("missing file name")
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := run(os.Stdout, b, *flagJSON, *flagVerify); err != nil {
		log.Fatalf("%v", err)
	}
}
