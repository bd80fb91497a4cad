package scan

// NumChannels is the size of the channel table. It never changes at runtime:
// the table is built once at startup and only per-channel scan state mutates
// afterwards.
const NumChannels = 20

// Channel binds one physical switch to the byte it emits.
type Channel struct {
	Pin    string // board label of the input pin
	Line   int    // GPIO line offset on the chip
	Symbol byte   // emitted on an idle→pressed edge
}

// Layout is the ordered channel table. Table order is the scan order, and
// therefore the emission order for presses detected in the same sweep.
type Layout []Channel

// DefaultLayout returns the fixed 20-key table of the typewriter build.
// Pin labels follow the original wiring: the board's twenty GPIO-capable
// pins D0–D13 and A5–A0, in that order, mapped to the two-row piano letters:
//
//	D0..D13 → a w s e d c r f t g b h n m
//	A5..A0  → j i k o l p
//
// Line offsets place the same switches on a Raspberry Pi header (BCM
// numbering), skipping 14 and 15 which the Pi reserves for its UART.
func DefaultLayout() Layout {
	return Layout{
		{Pin: "D0", Line: 2, Symbol: 'a'},
		{Pin: "D1", Line: 3, Symbol: 'w'},
		{Pin: "D2", Line: 4, Symbol: 's'},
		{Pin: "D3", Line: 5, Symbol: 'e'},
		{Pin: "D4", Line: 6, Symbol: 'd'},
		{Pin: "D5", Line: 7, Symbol: 'c'},
		{Pin: "D6", Line: 8, Symbol: 'r'},
		{Pin: "D7", Line: 9, Symbol: 'f'},
		{Pin: "D8", Line: 10, Symbol: 't'},
		{Pin: "D9", Line: 11, Symbol: 'g'},
		{Pin: "D10", Line: 12, Symbol: 'b'},
		{Pin: "D11", Line: 13, Symbol: 'h'},
		{Pin: "D12", Line: 16, Symbol: 'n'},
		{Pin: "D13", Line: 17, Symbol: 'm'},
		{Pin: "A5", Line: 18, Symbol: 'j'},
		{Pin: "A4", Line: 19, Symbol: 'i'},
		{Pin: "A3", Line: 20, Symbol: 'k'},
		{Pin: "A2", Line: 21, Symbol: 'o'},
		{Pin: "A1", Line: 22, Symbol: 'l'},
		{Pin: "A0", Line: 23, Symbol: 'p'},
	}
}

// Lines returns the GPIO line offsets in table order, for requesting the
// whole table as one bulk line request.
func (l Layout) Lines() []int {
	lines := make([]int, len(l))
	for i, ch := range l {
		lines[i] = ch.Line
	}
	return lines
}
