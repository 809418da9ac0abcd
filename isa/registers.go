package isa

import (
	"strconv"
	"strings"
)

// registerNames holds the canonical name for each of the 32 general
// purpose registers, indexed by register number.
var registerNames = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

var registersByName map[string]uint8

func init() {
	registersByName = make(map[string]uint8, 64)
	for i, name := range registerNames {
		registersByName[strings.TrimPrefix(name, "$")] = uint8(i)
	}
	// Plain numbers are accepted alongside the ABI names.
	for i := 0; i < 32; i++ {
		registersByName[strconv.Itoa(i)] = uint8(i)
	}
}

// Register resolves a register operand such as "$t0", "t0" or "$8" to
// its register number.
func Register(name string) (uint8, bool) {
	n, ok := registersByName[strings.ToLower(strings.TrimPrefix(name, "$"))]
	return n, ok
}

// RegisterName returns the canonical ABI name of register n.
func RegisterName(n uint8) string {
	return registerNames[n&0x1F]
}
