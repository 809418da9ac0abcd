package format_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisys/masm/assembler"
	"github.com/minisys/masm/format"
	"github.com/minisys/masm/isa"
)

func TestCOE(t *testing.T) {
	var buf bytes.Buffer
	err := format.COE(&buf, isa.WordsToBytes([]uint32{0x8D280000, 0x3C080001}))
	require.NoError(t, err)

	want := "memory_initialization_radix=16;\n" +
		"memory_initialization_vector=\n" +
		"8d280000,\n" +
		"3c080001;\n"
	assert.Equal(t, want, buf.String())
}

func TestCOEPadsPartialWord(t *testing.T) {
	var buf bytes.Buffer
	err := format.COE(&buf, []byte{0x00, 0x00, 0x00, 0x05, 0xFF})
	require.NoError(t, err)

	want := "memory_initialization_radix=16;\n" +
		"memory_initialization_vector=\n" +
		"00000005,\n" +
		"ff000000;\n"
	assert.Equal(t, want, buf.String())
}

func TestCOEEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.COE(&buf, nil))

	want := "memory_initialization_radix=16;\n" +
		"memory_initialization_vector=\n" +
		";\n"
	assert.Equal(t, want, buf.String())
}

func TestHexText(t *testing.T) {
	var buf bytes.Buffer
	err := format.HexText(&buf, isa.WordsToBytes([]uint32{0x8D280000, 0x00000000}))
	require.NoError(t, err)
	assert.Equal(t, "8d280000\n00000000\n", buf.String())
}

func TestBinaryPassesBytesThrough(t *testing.T) {
	data := []byte{0x42, 0x00, 0x00, 0x18}
	var buf bytes.Buffer
	require.NoError(t, format.Binary(&buf, data))
	assert.Equal(t, data, buf.Bytes())
}

func TestJSONReport(t *testing.T) {
	src := `.data
val: .word 5
.text
main: lw $t0, val($gp)
li $t0, 100000
j main
`
	img, stats, err := assembler.Assemble(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.JSON(&buf, img, stats))

	var got format.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 4, got.InstructionCount)
	assert.Equal(t, 4, got.DataByteCount)
	assert.Equal(t, uint32(0), got.EntryPoint)
	assert.Equal(t, []string{"8f880000", "3c080001", "350886a0", "08000000"}, got.Text)
	assert.Equal(t, []string{"00000005"}, got.Data)
	require.NotNil(t, got.Stats)
	assert.Equal(t, 4, got.Stats.Instructions)
	assert.Equal(t, 2, got.Stats.Labels)
	assert.NotEmpty(t, got.Stats.Elapsed)
}

func TestJSONOmitsEmptySections(t *testing.T) {
	img, _, err := assembler.Assemble("nop\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, format.JSON(&buf, img, nil))

	assert.NotContains(t, buf.String(), `"data"`)
	assert.NotContains(t, buf.String(), `"stats"`)
}

func TestJSONRefusesMissingImage(t *testing.T) {
	var buf bytes.Buffer
	err := format.JSON(&buf, nil, nil)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}
