package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexInvalidUTF8              Code = 1005
	LexUnterminatedChar         Code = 1006

	// Syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectType        Code = 2005
	SynExpectExpression  Code = 2006
	SynExpectPattern     Code = 2007
	SynExpectItem        Code = 2008
	SynExpectBlock       Code = 2009
	SynInvalidToken      Code = 2010
	SynUnexpectedEOF     Code = 2011

	// Formatting
	FmtInfo              Code = 3000
	FmtDelegationFailed  Code = 3001
	FmtDelegationChanged Code = 3002
	FmtWouldReformat     Code = 3003

	// I/O
	IOInfo          Code = 4000
	IOReadFailed    Code = 4001
	IOWriteFailed   Code = 4002
	IOEncodingError Code = 4003

	// Configuration
	CfgInfo       Code = 5000
	CfgInvalid    Code = 5001
	CfgUnknownKey Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	LexInvalidUTF8:              "Source is not valid UTF-8",
	LexUnterminatedChar:         "Unterminated character literal",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynUnclosedDelimiter: "Unclosed delimiter",
	SynExpectSemicolon:   "Expected semicolon",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectType:        "Expected type",
	SynExpectExpression:  "Expected expression",
	SynExpectPattern:     "Expected pattern",
	SynExpectItem:        "Expected item",
	SynExpectBlock:       "Expected block",
	SynInvalidToken:      "Invalid token",
	SynUnexpectedEOF:     "Unexpected end of file",

	FmtInfo:              "Formatting information",
	FmtDelegationFailed:  "Delegated formatter failed",
	FmtDelegationChanged: "Delegated formatter changed tokens",
	FmtWouldReformat:     "File is not formatted",

	IOInfo:          "I/O information",
	IOReadFailed:    "Cannot read file",
	IOWriteFailed:   "Cannot write file",
	IOEncodingError: "Unsupported source encoding",

	CfgInfo:       "Configuration information",
	CfgInvalid:    "Invalid configuration",
	CfgUnknownKey: "Unknown configuration key",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
