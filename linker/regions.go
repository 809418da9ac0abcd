package linker

import "github.com/minisys/masm/isa"

// Region is one fixed slice of instruction memory. Start and End are
// byte addresses, End exclusive. The layout is part of the contract
// with the board's loader and must not drift.
type Region struct {
	Name  string
	Start uint32
	End   uint32
}

// Words returns the region's capacity in instructions.
func (r Region) Words() int {
	return int(r.End-r.Start) / isa.WordSize
}

// The board's instruction memory layout, in address order.
var (
	RegionBIOS       = Region{Name: "bios", Start: 0x0000, End: 0x0500}
	RegionUser       = Region{Name: "user-application", Start: 0x0500, End: 0x5500}
	RegionEmpty      = Region{Name: "reserved-empty", Start: 0x5500, End: 0xF000}
	RegionIntEntry   = Region{Name: "interrupt-entry", Start: 0xF000, End: 0xF500}
	RegionIntHandler = Region{Name: "interrupt-handler", Start: 0xF500, End: 0x10000}
)

// Layout returns the regions in memory order.
func Layout() []Region {
	return []Region{RegionBIOS, RegionUser, RegionEmpty, RegionIntEntry, RegionIntHandler}
}
