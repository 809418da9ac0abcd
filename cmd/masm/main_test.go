package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/isa"
)

func TestRootCommandWiring(t *testing.T) {
	root := rootCommand()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "build")
	assert.Contains(t, names, "link")
	assert.Contains(t, names, "disasm")
	assert.NotEmpty(t, root.Version)
}

func TestParseHexWords(t *testing.T) {
	code, err := parseHexWords("8d280000\n00000000\n42000018\n")
	require.NoError(t, err)
	assert.Equal(t, isa.WordsToBytes([]uint32{0x8D280000, 0, 0x42000018}), code)

	_, err = parseHexWords("8d28zz00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "8d28zz00")
}

func TestRenderDiagnostic(t *testing.T) {
	e := assembler.Errorf(assembler.Syntax, 3, "addi $t0", "missing operand")

	plain := renderDiagnostic(e, false)
	assert.Equal(t, "syntax error at line 3: missing operand\n\taddi $t0", plain)

	colored := renderDiagnostic(e, true)
	assert.Contains(t, colored, colorRed)
	assert.Contains(t, colored, colorReset)
	assert.Contains(t, colored, "missing operand")
}

func TestKindColors(t *testing.T) {
	assert.Equal(t, colorRed, kindColor(assembler.Syntax))
	assert.Equal(t, colorYellow, kindColor(assembler.Semantic))
	assert.Equal(t, colorMagenta, kindColor(assembler.Linking))
	assert.Equal(t, colorCyan, kindColor(assembler.Runtime))
}
