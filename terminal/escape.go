// @focus: #sys { term, parser }
package terminal

// BlockType classifies a completed unit of input
// Numeric values are stable and shared with event consumers
type BlockType int

const (
	BlockNone    BlockType = iota // Two-byte escape or nothing useful
	BlockCSI                      // Control Sequence Introducer
	BlockOSC                      // Operating System Command
	BlockDCS                      // Device Control String
	BlockPM                       // Privacy Message
	BlockSOS                      // Start Of String
	BlockAPC                      // Application Program Command
	BlockKey                      // Decoded key event
	BlockMouse                    // Decoded mouse event
	BlockUnicode                  // Plain text codepoint
)

// String returns the block type name
func (t BlockType) String() string {
	switch t {
	case BlockNone:
		return "None"
	case BlockCSI:
		return "CSI"
	case BlockOSC:
		return "OSC"
	case BlockDCS:
		return "DCS"
	case BlockPM:
		return "PM"
	case BlockSOS:
		return "SOS"
	case BlockAPC:
		return "APC"
	case BlockKey:
		return "Key"
	case BlockMouse:
		return "Mouse"
	case BlockUnicode:
		return "Unicode"
	default:
		return "Unknown"
	}
}

// Handler receives completed blocks from a Parser
// data is only valid for the duration of the call
// Return values are advisory: false is reported by Parse but parsing continues
type Handler interface {
	HandleBlock(kind BlockType, data []byte) bool
	HandleCodepoint(r rune) bool
}

// HandlerFuncs adapts plain functions to Handler; nil fields accept and discard
type HandlerFuncs struct {
	Block     func(kind BlockType, data []byte) bool
	Codepoint func(r rune) bool
}

func (h HandlerFuncs) HandleBlock(kind BlockType, data []byte) bool {
	if h.Block == nil {
		return true
	}
	return h.Block(kind, data)
}

func (h HandlerFuncs) HandleCodepoint(r rune) bool {
	if h.Codepoint == nil {
		return true
	}
	return h.Codepoint(r)
}

type parserState uint8

const (
	stateNormal  parserState = iota
	stateESC                 // After ESC
	stateCSI                 // Inside CSI body
	stateST                  // String body, ST terminated
	stateSTOrBEL             // String body, ST or BEL terminated (OSC)
	stateESCST               // ESC seen inside a string body
	stateC1ST                // 0xC2 seen inside a string body, may be UTF-8 encoded ST
)

type csiPhase uint8

const (
	csiParameter csiPhase = iota
	csiIntermediate
)

const (
	byteBEL = 0x07
	byteESC = 0x1b
	byteST  = 0x9c
)

// Parser is an incremental escape sequence state machine
// Input may be split at any byte boundary across Parse calls
// Not safe for concurrent use
type Parser struct {
	handler Handler

	state parserState
	csi   csiPhase
	kind  BlockType // String block being accumulated

	// Sequence body after the introducer; empty in stateNormal
	// A pending terminator candidate (ESC or 0xC2) is held by state, not buffered
	buf []byte

	text       utf8Decoder // Normal-state text decoding
	strPending int         // Continuation bytes owed by the last payload lead byte

	ok bool
}

// NewParser creates a parser delivering to h
func NewParser(h Handler) *Parser {
	return &Parser{
		handler: h,
		buf:     make([]byte, 0, 64),
	}
}

// Parse feeds data through the state machine
// Returns false if any handler call returned false
func (p *Parser) Parse(data []byte) bool {
	p.ok = true
	for _, b := range data {
		p.processByte(b)
	}
	return p.ok
}

// Reset discards any partial sequence and returns to the normal state
func (p *Parser) Reset() {
	p.state = stateNormal
	p.csi = csiParameter
	p.kind = BlockNone
	p.buf = p.buf[:0]
	p.text.reset()
	p.strPending = 0
}

func (p *Parser) processByte(b byte) {
	switch p.state {
	case stateNormal:
		p.normal(b)
	case stateESC:
		p.escape(b)
	case stateCSI:
		p.csiByte(b)
	case stateST, stateSTOrBEL:
		p.stringByte(b)
	case stateESCST:
		p.escapeInString(b)
	case stateC1ST:
		p.c1InString(b)
	}
}

func (p *Parser) normal(b byte) {
	if b == byteESC {
		p.text.reset()
		p.state = stateESC
		return
	}
	// Raw C1 introducers only count outside a multi-byte sequence
	if p.text.idle() && b >= 0x80 && b <= 0x9f && p.introduce(b-0x40) {
		return
	}

	r, st := p.text.feed(b)
	switch st {
	case utf8Done:
		if r >= 0x80 && r <= 0x9f && p.introduce(byte(r-0x40)) {
			return
		}
		p.emitCodepoint(r)
	case utf8Retry:
		p.normal(b)
	}
}

func (p *Parser) escape(b byte) {
	switch {
	case b == byteESC:
		// Restart
	case p.introduce(b):
	case b >= 0x20 && b <= 0x7e:
		p.buf = append(p.buf, b)
		p.emit(BlockNone, p.buf)
		p.Reset()
	default:
		p.invalid(b)
	}
}

// introduce enters the state for a 7-bit introducer, false if ch is not one
func (p *Parser) introduce(ch byte) bool {
	switch ch {
	case '[':
		p.state = stateCSI
		p.csi = csiParameter
		p.kind = BlockCSI
	case ']':
		p.beginString(BlockOSC)
	case 'P':
		p.beginString(BlockDCS)
	case '^':
		p.beginString(BlockPM)
	case 'X':
		p.beginString(BlockSOS)
	case '_':
		p.beginString(BlockAPC)
	default:
		return false
	}
	p.buf = p.buf[:0]
	return true
}

func (p *Parser) beginString(kind BlockType) {
	p.kind = kind
	p.strPending = 0
	p.state = p.stringState()
}

func (p *Parser) stringState() parserState {
	if p.kind == BlockOSC {
		return stateSTOrBEL
	}
	return stateST
}

func (p *Parser) csiByte(b byte) {
	switch {
	case b >= 0x30 && b <= 0x3f:
		if p.csi == csiIntermediate {
			p.invalid(b)
			return
		}
		p.buf = append(p.buf, b)
	case b >= 0x20 && b <= 0x2f:
		p.csi = csiIntermediate
		p.buf = append(p.buf, b)
	case b >= 0x40 && b <= 0x7e:
		p.buf = append(p.buf, b)
		p.emit(BlockCSI, p.buf)
		p.Reset()
	default:
		p.invalid(b)
	}
}

func (p *Parser) stringByte(b byte) {
	switch {
	case b == byteESC:
		p.state = stateESCST
	case b == byteBEL && p.state == stateSTOrBEL:
		p.finishString()
	case b == byteST && p.strPending == 0:
		p.finishString()
	case b == 0xc2:
		// A lead byte ends any truncated payload sequence
		p.strPending = 0
		p.state = stateC1ST
	default:
		p.appendString(b)
	}
}

func (p *Parser) escapeInString(b byte) {
	if b == '\\' {
		p.finishString()
		return
	}
	// Aborted string; b is interpreted as the byte after a fresh ESC
	p.Reset()
	p.state = stateESC
	p.escape(b)
}

func (p *Parser) c1InString(b byte) {
	p.state = p.stringState()
	if b == byteST {
		p.finishString()
		return
	}
	p.appendString(0xc2)
	p.stringByte(b)
}

// appendString buffers a payload byte, tracking UTF-8 progress so a raw 0x9c
// continuation byte is not mistaken for ST
func (p *Parser) appendString(b byte) {
	p.buf = append(p.buf, b)
	switch {
	case p.strPending > 0 && b&0xc0 == 0x80:
		p.strPending--
	default:
		p.strPending = utf8LeadLen(b)
	}
}

func (p *Parser) finishString() {
	p.emit(p.kind, p.buf)
	p.Reset()
}

// invalid abandons the current sequence; ESC survives as the start of a new one
func (p *Parser) invalid(b byte) {
	p.Reset()
	if b == byteESC {
		p.state = stateESC
	}
}

func (p *Parser) emit(kind BlockType, data []byte) {
	if !p.handler.HandleBlock(kind, data) {
		p.ok = false
	}
}

func (p *Parser) emitCodepoint(r rune) {
	if !p.handler.HandleCodepoint(r) {
		p.ok = false
	}
}
