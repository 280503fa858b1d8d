package xmltok

// Kind identifies the lexical kind of a token.
type Kind byte

const (
	KindNone Kind = iota
	KindLessBracket
	KindGreaterBracket
	KindLeftSqBracket
	KindRightSqBracket
	KindLeftBracket
	KindRightBracket
	KindEq
	KindPlus
	KindPipe
	KindStar
	KindQuestionMark
	KindSemicolon
	KindPercent
	KindComma
	KindCloseTag
	KindEmptyTagEnd
	KindName
	KindQName
	KindNMToken
	KindText
	KindWhiteSpace
	KindCData
	KindComment
	KindPI
	KindCharRef
	KindRef
	KindParRef
	KindQuotedString
	KindQuote
	KindPrologStart
	KindPrologEnd
	KindDoctypeStart
	KindDoctypeOpen
	KindDoctypeClose
	KindEntityType
	KindAttlistType
	KindElementType
	KindNotationType
	KindRequiredDecl
	KindImpliedDecl
	KindFixedDecl
	KindPCDataDecl
	KindError
)

var kindNames = [...]string{
	KindNone:           "None",
	KindLessBracket:    "LessBracket",
	KindGreaterBracket: "GreaterBracket",
	KindLeftSqBracket:  "LeftSqBracket",
	KindRightSqBracket: "RightSqBracket",
	KindLeftBracket:    "LeftBracket",
	KindRightBracket:   "RightBracket",
	KindEq:             "Eq",
	KindPlus:           "Plus",
	KindPipe:           "Pipe",
	KindStar:           "Star",
	KindQuestionMark:   "QuestionMark",
	KindSemicolon:      "Semicolon",
	KindPercent:        "Percent",
	KindComma:          "Comma",
	KindCloseTag:       "CloseTag",
	KindEmptyTagEnd:    "EmptyTagEnd",
	KindName:           "Name",
	KindQName:          "QName",
	KindNMToken:        "NMToken",
	KindText:           "Text",
	KindWhiteSpace:     "WhiteSpace",
	KindCData:          "CData",
	KindComment:        "Comment",
	KindPI:             "PI",
	KindCharRef:        "CharRef",
	KindRef:            "Ref",
	KindParRef:         "ParRef",
	KindQuotedString:   "QuotedString",
	KindQuote:          "Quote",
	KindPrologStart:    "PrologStart",
	KindPrologEnd:      "PrologEnd",
	KindDoctypeStart:   "DoctypeStart",
	KindDoctypeOpen:    "DoctypeOpen",
	KindDoctypeClose:   "DoctypeClose",
	KindEntityType:     "EntityType",
	KindAttlistType:    "AttlistType",
	KindElementType:    "ElementType",
	KindNotationType:   "NotationType",
	KindRequiredDecl:   "RequiredDecl",
	KindImpliedDecl:    "ImpliedDecl",
	KindFixedDecl:      "FixedDecl",
	KindPCDataDecl:     "PCDataDecl",
	KindError:          "Error",
}

// String returns a stable name for the kind, suitable for debugging.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// IsDelimiter reports whether tokens of this kind carry only fixed markup.
func (k Kind) IsDelimiter() bool {
	switch k {
	case KindLessBracket, KindGreaterBracket, KindLeftSqBracket, KindRightSqBracket,
		KindLeftBracket, KindRightBracket, KindEq, KindPlus, KindPipe, KindStar,
		KindQuestionMark, KindSemicolon, KindPercent, KindComma, KindCloseTag,
		KindEmptyTagEnd, KindQuote, KindPrologStart, KindPrologEnd,
		KindDoctypeStart, KindDoctypeOpen, KindDoctypeClose, KindEntityType,
		KindAttlistType, KindElementType, KindNotationType, KindRequiredDecl,
		KindImpliedDecl, KindFixedDecl, KindPCDataDecl:
		return true
	default:
		return false
	}
}

var delimiterKinds = map[rune]Kind{
	'[': KindLeftSqBracket,
	']': KindRightSqBracket,
	'(': KindLeftBracket,
	')': KindRightBracket,
	'=': KindEq,
	'+': KindPlus,
	'|': KindPipe,
	'*': KindStar,
	'?': KindQuestionMark,
	';': KindSemicolon,
	',': KindComma,
}
