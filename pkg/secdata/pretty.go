// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secdata

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/camelcase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Field describes one field of the encoded structure.
type Field struct {
	Name   string
	Offset int
	Size   int
	Value  string
}

// Fields returns the fields of the structure in encoding order.
func (k *Kernel) Fields() []Field {
	v := reflect.ValueOf(k).Elem()
	t := v.Type()

	fields := make([]Field, 0, t.NumField())
	offset := 0
	for i := 0; i < t.NumField(); i++ {
		fv := v.Field(i)
		size := binary.Size(fv.Interface())
		fields = append(fields, Field{
			Name:   strings.Join(camelcase.Split(t.Field(i).Name), " "),
			Offset: offset,
			Size:   size,
			Value:  formatValue(fv.Interface()),
		})
		offset += size
	}
	return fields
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case uint8:
		return fmt.Sprintf("0x%02x", v)
	case uint32:
		return fmt.Sprintf("0x%08x", v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", v)
}

// Table renders the fields as a table.
func (k *Kernel) Table() string {
	t := table.NewWriter()
	t.SetTitle("Kernel secdata v%d.%d", k.MajorVersion(), k.MinorVersion())
	t.AppendHeader(table.Row{"Field", "Offset", "Size", "Value"})
	for _, f := range k.Fields() {
		t.AppendRow(table.Row{f.Name, fmt.Sprintf("0x%02x", f.Offset), humanize.IBytes(uint64(f.Size)), f.Value})
	}
	return t.Render()
}

// Summary returns a multi-line summary of the structure and its validity.
func (k *Kernel) Summary() string {
	s := fmt.Sprintf("Struct Version : %d.%d (0x%02x)\n", k.MajorVersion(), k.MinorVersion(), k.StructVersion)
	s += fmt.Sprintf("Struct Size    : %d\n", k.StructSize)
	s += fmt.Sprintf("CRC8           : 0x%02x (computed 0x%02x)\n", k.CRC8, k.ComputeCRC())
	s += fmt.Sprintf("Flags          : 0x%02x\n", k.Flags)
	s += fmt.Sprintf("Kernel Versions: 0x%08x\n", k.KernelVersions)
	s += fmt.Sprintf("EC Hash        : %s\n", k.ECHash)
	if err := k.Validate(); err != nil {
		s += fmt.Sprintf("Status         : INVALID\n%v", err)
	} else {
		s += "Status         : OK\n"
	}
	return s
}
