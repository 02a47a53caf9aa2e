package terminal

// letterTrailerKeys maps legacy letter finals to kitty functional key numbers
var letterTrailerKeys = map[byte]int{
	'A': 57352, // up
	'B': 57353, // down
	'C': 57351, // right
	'D': 57350, // left
	'E': 57427, // keypad begin
	'F': 8,     // end
	'H': 7,     // home
	'P': 11,    // f1
	'Q': 12,    // f2
	'S': 14,    // f4
}

// legacyFunctionalKeys maps CSI ~ numbers to kitty functional key numbers
var legacyFunctionalKeys = map[int]int{
	2:   57348, // insert
	3:   57349, // delete
	5:   57354, // pageup
	6:   57355, // pagedown
	7:   57356, // home
	8:   57357, // end
	9:   57346, // tab
	11:  57364, // f1
	12:  57365, // f2
	13:  57345, // enter
	14:  57367, // f4
	15:  57368, // f5
	17:  57369, // f6
	18:  57370, // f7
	19:  57371, // f8
	20:  57372, // f9
	21:  57373, // f10
	23:  57374, // f11
	24:  57375, // f12
	27:  57344, // escape
	127: 57347, // backspace
}

// functionalKeyNames names kitty private-use key numbers
// Keypad keys decode to their main-block equivalents
var functionalKeyNames = map[int]string{
	57344: "esc",
	57345: "enter",
	57346: "tab",
	57347: "backspace",
	57348: "insert",
	57349: "delete",
	57350: "left",
	57351: "right",
	57352: "up",
	57353: "down",
	57354: "pageup",
	57355: "pagedown",
	57356: "home",
	57357: "end",
	57358: "capslock",
	57359: "scrolllock",
	57360: "numlock",
	57361: "printscreen",
	57362: "pause",
	57363: "menu",

	57364: "f1",
	57365: "f2",
	57366: "f3",
	57367: "f4",
	57368: "f5",
	57369: "f6",
	57370: "f7",
	57371: "f8",
	57372: "f9",
	57373: "f10",
	57374: "f11",
	57375: "f12",
	57376: "f13",
	57377: "f14",
	57378: "f15",
	57379: "f16",
	57380: "f17",
	57381: "f18",
	57382: "f19",
	57383: "f20",
	57384: "f21",
	57385: "f22",
	57386: "f23",
	57387: "f24",

	57399: "num0",
	57400: "num1",
	57401: "num2",
	57402: "num3",
	57403: "num4",
	57404: "num5",
	57405: "num6",
	57406: "num7",
	57407: "num8",
	57408: "num9",
	57409: "numdec",
	57410: "numdiv",
	57411: "nummult",
	57412: "numsub",
	57413: "numadd",
	57414: "return",
	57416: ".",
	57417: "left",
	57418: "right",
	57419: "up",
	57420: "down",
	57421: "pageup",
	57422: "pagedown",
	57423: "home",
	57424: "end",
	57425: "insert",
	57426: "delete",

	57428: "mediaplaypause",
	57429: "mediaplaypause",
	57430: "mediaplaypause",
	57432: "mediastop",
	57435: "medianexttrack",
	57436: "mediaprevtrack",
	57438: "volumedown",
	57439: "volumeup",
	57440: "volumemute",

	// Bare modifier keys
	57441: "left+shift",
	57442: "left+control",
	57443: "left+alt",
	57444: "left+meta",
	57445: "left+meta",
	57446: "left+meta",
	57447: "right+shift",
	57448: "right+control",
	57449: "right+alt",
	57450: "right+meta",
	57451: "right+meta",
	57452: "right+meta",
}
