// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resetcause tells why the controller went through its last reset.
package resetcause

import (
	"fmt"
	"strings"
)

// Flags is a set of reset causes, with the host command bit values.
type Flags uint32

// Reset causes.
const (
	Other = Flags(1 << iota)
	ResetPin
	Brownout
	PowerOn
	Watchdog
	Soft
	Hibernate
	RTCAlarm
	WakePin
	LowBattery
	SysJump
	Hard
	APOff
	Preserved
	USBResume
	RDD
	RBOX
	Security
	APWatchdog
	StayInRO
	EFS
	APIdle
	InitialPower
)

var flagNames = []struct {
	val  Flags
	name string
}{
	{Other, "other"},
	{ResetPin, "reset-pin"},
	{Brownout, "brownout"},
	{PowerOn, "power-on"},
	{Watchdog, "watchdog"},
	{Soft, "soft"},
	{Hibernate, "hibernate"},
	{RTCAlarm, "rtc-alarm"},
	{WakePin, "wake-pin"},
	{LowBattery, "low-battery"},
	{SysJump, "sysjump"},
	{Hard, "hard"},
	{APOff, "ap-off"},
	{Preserved, "preserved"},
	{USBResume, "usb-resume"},
	{RDD, "rdd"},
	{RBOX, "rbox"},
	{Security, "security"},
	{APWatchdog, "ap-watchdog"},
	{StayInRO, "stay-in-ro"},
	{EFS, "efs"},
	{APIdle, "ap-idle"},
	{InitialPower, "initial-power"},
}

// String returns the names of the flags joined with "|". Unknown bits are
// printed in hex.
func (f Flags) String() string {
	var names []string
	for _, v := range flagNames {
		if f&v.val != 0 {
			names = append(names, v.name)
			f &^= v.val
		}
	}
	if f != 0 || len(names) == 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(f)))
	}
	return strings.Join(names, "|")
}

// Has returns true if every flag of o is set.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// IsWarm returns true if the reset kept the rest of the platform running,
// that is none of the cold reset causes is set.
func IsWarm(f Flags) bool {
	return f&(ResetPin|PowerOn|Watchdog|Hard|Soft) == 0
}

// Source provides the reset flags of the current boot.
type Source interface {
	Flags() (Flags, error)
}

// Static is a Source with fixed flags.
type Static Flags

// Flags implements Source.
func (s Static) Flags() (Flags, error) {
	return Flags(s), nil
}
