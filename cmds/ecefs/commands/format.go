// Copyright 2017-2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Format int

const (
	FormatUndefined = Format(iota)
	FormatText
	FormatJSON
)

func ParseFormat(s string) Format {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "text":
		return FormatText
	case "json":
		return FormatJSON
	}
	return FormatUndefined
}

// Output is the option selecting the output format.
type Output struct {
	Format *string `long:"format" description:"output format [text, json]"`
}

// Get returns the selected format, FormatText by default.
func (o Output) Get() (Format, error) {
	if o.Format == nil {
		return FormatText, nil
	}
	format := ParseFormat(*o.Format)
	if format == FormatUndefined {
		return FormatUndefined, ErrArgs{Err: fmt.Errorf("unknown format '%s'", *o.Format)}
	}
	return format, nil
}

// Print writes v as JSON or, in text format, the result of text.
func (o Output) Print(v interface{}, text func() string) error {
	format, err := o.Get()
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("unable to marshal JSON: %w", err)
		}
		fmt.Fprintf(Stdout, "%s\n", b)
	default:
		fmt.Fprintf(Stdout, "%s\n", text())
	}
	return nil
}
