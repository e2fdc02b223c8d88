package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind is the shape a raw line was classified as.
type LineKind int

const (
	KindUnrecognized LineKind = iota
	KindArgument              // <level> <TAG> <text>, level 0-2
	KindNoArgument            // <level> <TAG>, level 0-1
	KindRecordStart           // 0 <id> INDI|FAM
	KindStructural            // 0 HEAD|TRLR|NOTE [text]
)

func (k LineKind) String() string {
	switch k {
	case KindArgument:
		return "argument"
	case KindNoArgument:
		return "no_argument"
	case KindRecordStart:
		return "record_start"
	case KindStructural:
		return "structural"
	default:
		return "unrecognized"
	}
}

// Line is a classified input line.
type Line struct {
	Raw   string
	Kind  LineKind
	Level int
	Tag   string
	Arg   string // trailing text (argument and structural lines)
	XRef  string // record identifier (record start lines)
}

// Tag vocabulary per shape. MARR appears in both attribute sets; with
// trailing text it is classified as an argument line.
var (
	argumentPattern    = regexp.MustCompile(`^(0|1|2) (NAME|SEX|FAMC|FAMS|MARR|HUSB|WIFE|CHIL|DATE) (.*)$`)
	noArgumentPattern  = regexp.MustCompile(`^(0|1) (BIRT|DEAT|MARR|DIV|HEAD|TRLR|NOTE)$`)
	recordStartPattern = regexp.MustCompile(`^0 (.*) (INDI|FAM)$`)
	structuralPattern  = regexp.MustCompile(`^0 (HEAD|TRLR|NOTE) ?(.*)$`)
)

// Classify determines the shape of one raw line.
// A trailing line terminator is stripped first. Shapes are checked in the
// order argument, no-argument, record start, structural.
func Classify(raw string) Line {
	raw = strings.TrimRight(raw, "\r\n")
	line := Line{Raw: raw}

	if m := argumentPattern.FindStringSubmatch(raw); m != nil {
		line.Kind = KindArgument
		line.Level = atoiLevel(m[1])
		line.Tag = m[2]
		line.Arg = m[3]
		return line
	}
	if m := noArgumentPattern.FindStringSubmatch(raw); m != nil {
		line.Kind = KindNoArgument
		line.Level = atoiLevel(m[1])
		line.Tag = m[2]
		return line
	}
	if m := recordStartPattern.FindStringSubmatch(raw); m != nil {
		line.Kind = KindRecordStart
		line.XRef = m[1]
		line.Tag = m[2]
		return line
	}
	if m := structuralPattern.FindStringSubmatch(raw); m != nil {
		line.Kind = KindStructural
		line.Tag = m[1]
		line.Arg = m[2]
		return line
	}

	return line
}

// atoiLevel converts a level already matched as a single digit.
func atoiLevel(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
