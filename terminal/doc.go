// @focus: #sys { term }
// Package terminal decodes terminal input streams into structured events.
//
// Features:
//   - Byte-at-a-time escape sequence parser (CSI, OSC, DCS, PM, SOS, APC) with incremental UTF-8
//   - Kitty keyboard protocol decoding (CSI u and legacy functional forms)
//   - SGR extended mouse decoding
//   - Background reader pipeline with bounded handoff and cancellation
//   - Raw mode and protocol enable/disable sequences for Unix ttys
//
// Parsing state survives across reads, so sequences split between reads decode once.
package terminal
