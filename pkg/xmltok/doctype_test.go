package xmltok

import (
	"strings"
	"testing"

	xmlerrors "github.com/jacoelho/xmllex/errors"
)

func TestLexerInternalSubset(t *testing.T) {
	input := `<!DOCTYPE note [<!ELEMENT note (#PCDATA|b)*>` +
		`<!ATTLIST note id ID #REQUIRED>` +
		`<!ENTITY e "v&amp;%p;">` +
		`<!NOTATION n SYSTEM "x.gif">]>`
	ws := `WhiteSpace(" ")`
	expectTokens(t, input, []string{
		"DoctypeStart", ws, `Name("note")`, ws, "LeftSqBracket",
		"ElementType", ws, `Name("note")`, ws, "LeftBracket", "PCDataDecl", "Pipe", `Name("b")`, "RightBracket", "Star", "GreaterBracket",
		"AttlistType", ws, `Name("note")`, ws, `Name("id")`, ws, `Name("ID")`, ws, "RequiredDecl", "GreaterBracket",
		"EntityType", ws, `Name("e")`, ws, "Quote", `Text("v")`, `Ref("amp")`, `ParRef("p")`, "Quote", "GreaterBracket",
		"NotationType", ws, `Name("n")`, ws, `Name("SYSTEM")`, ws, `QuotedString("x.gif")`, "GreaterBracket",
		"RightSqBracket", "GreaterBracket",
	})
}

func TestLexerExternalID(t *testing.T) {
	input := `<!DOCTYPE html PUBLIC "-//W3C//DTD" 'x.dtd'><html/>`
	ws := `WhiteSpace(" ")`
	expectTokens(t, input, []string{
		"DoctypeStart", ws, `Name("html")`, ws, `Name("PUBLIC")`, ws,
		`QuotedString("-//W3C//DTD")`, ws, `QuotedString("x.dtd")`, "GreaterBracket",
		"LessBracket", `Name("html")`, "EmptyTagEnd",
	})
}

func TestLexerExternalIDWithInternalSubset(t *testing.T) {
	expectTokens(t, `<!DOCTYPE a SYSTEM "a.dtd" []>`, []string{
		"DoctypeStart", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`, `Name("SYSTEM")`, `WhiteSpace(" ")`,
		`QuotedString("a.dtd")`, `WhiteSpace(" ")`, "LeftSqBracket", "RightSqBracket", "GreaterBracket",
	})
}

func TestLexerAttlistDefaults(t *testing.T) {
	ws := `WhiteSpace(" ")`
	expectTokens(t, `<!ATTLIST a t (x|y) "x" u CDATA #FIXED 'z'>`, []string{
		"AttlistType", ws, `Name("a")`, ws, `Name("t")`, ws,
		"LeftBracket", `Name("x")`, "Pipe", `Name("y")`, "RightBracket", ws,
		"Quote", `Text("x")`, "Quote", ws,
		`Name("u")`, ws, `Name("CDATA")`, ws, "FixedDecl", ws, "Quote", `Text("z")`, "Quote",
		"GreaterBracket",
	})
}

func TestLexerElementContentModel(t *testing.T) {
	expectTokens(t, `<!ELEMENT a (b?,c+)>`, []string{
		"ElementType", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`,
		"LeftBracket", `Name("b")`, "QuestionMark", "Comma", `Name("c")`, "Plus", "RightBracket",
		"GreaterBracket",
	})
}

func TestLexerParameterEntityDeclaration(t *testing.T) {
	ws := `WhiteSpace(" ")`
	expectTokens(t, `<!ENTITY % p "v">%p;`, []string{
		"EntityType", ws, "Percent", ws, `Name("p")`, ws, "Quote", `Text("v")`, "Quote", "GreaterBracket",
		`Text("%p;")`,
	})
}

func TestLexerNMTokenInDeclaration(t *testing.T) {
	expectTokens(t, `<!ATTLIST a n (1st|2nd) #IMPLIED>`, []string{
		"AttlistType", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`, `Name("n")`, `WhiteSpace(" ")`,
		"LeftBracket", `NMToken("1st")`, "Pipe", `NMToken("2nd")`, "RightBracket", `WhiteSpace(" ")`,
		"ImpliedDecl", "GreaterBracket",
	})
}

func TestLexerUnknownHashKeyword(t *testing.T) {
	expectTokens(t, `<!ELEMENT a #ANY>`, []string{
		"ElementType", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`, `Text("#")`, `Name("ANY")`, "GreaterBracket",
	})
}

func TestLexerConditionalSection(t *testing.T) {
	expectTokens(t, `<!DOCTYPE d [<![ x ]]>]>`, []string{
		"DoctypeStart", `WhiteSpace(" ")`, `Name("d")`, `WhiteSpace(" ")`, "LeftSqBracket",
		"DoctypeOpen", `WhiteSpace(" ")`, `Name("x")`, `WhiteSpace(" ")`, "DoctypeClose",
		"RightSqBracket", "GreaterBracket",
	})
}

func TestLexerXMLDeclInsideInternalSubset(t *testing.T) {
	ws := `WhiteSpace(" ")`
	expectTokens(t, `<!DOCTYPE d [ <?xml version='1.0'?> <!ELEMENT a ANY> ]>`, []string{
		"DoctypeStart", ws, `Name("d")`, ws, "LeftSqBracket", ws,
		"PrologStart", ws, `Name("version")`, "Eq", `QuotedString("1.0")`, "PrologEnd", ws,
		"ElementType", ws, `Name("a")`, ws, `Name("ANY")`, "GreaterBracket", ws,
		"RightSqBracket", "GreaterBracket",
	})
}

func TestLexerStrayGreaterInInternalSubset(t *testing.T) {
	toks := expectTokens(t, `<!DOCTYPE d [>]>`, []string{
		"DoctypeStart", `WhiteSpace(" ")`, `Name("d")`, `WhiteSpace(" ")`, "LeftSqBracket",
		`Error(">")`, "RightSqBracket", "GreaterBracket",
	})
	if toks[5].Code != xmlerrors.ErrIllegalChar {
		t.Fatalf("code = %q, want %q", toks[5].Code, xmlerrors.ErrIllegalChar)
	}
}

func TestLexerEntityValueKeepsMarkup(t *testing.T) {
	ws := `WhiteSpace(" ")`
	expectTokens(t, `<!ENTITY x '<p>%q;'>`, []string{
		"EntityType", ws, `Name("x")`, ws, "Quote", `Text("<p>")`, `ParRef("q")`, "Quote", "GreaterBracket",
	})
}

func TestLexerPercentDiagnostics(t *testing.T) {
	tests := []struct {
		input string
		want  []string
		code  xmlerrors.ErrorCode
		msg   string
	}{
		{
			input: `<!ENTITY a '%`,
			want:  []string{"EntityType", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`, "Quote", `Error("%")`},
			code:  xmlerrors.ErrPrematureEOF,
			msg:   `end of input after "%"`,
		},
		{
			input: `<!ENTITY a '% x'>`,
			want: []string{"EntityType", `WhiteSpace(" ")`, `Name("a")`, `WhiteSpace(" ")`, "Quote", `Error("%")`,
				`Text(" x")`, "Quote", "GreaterBracket"},
			code: xmlerrors.ErrIllegalChar,
			msg:  `expected name after "%"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
			_, l := lex(t, tt.input)
			diags := l.Diagnostics()
			if len(diags) != 1 {
				t.Fatalf("diagnostics = %v", diags)
			}
			if diags[0].Code != tt.code || diags[0].Message != tt.msg {
				t.Fatalf("diagnostic = %q %q, want %q %q", diags[0].Code, diags[0].Message, tt.code, tt.msg)
			}
		})
	}
}

func TestLexerDoctypeStateTransitions(t *testing.T) {
	l := New(strings.NewReader(`<!DOCTYPE a [<!ENTITY e 'x'>]>`))
	var states []State
	for tok, err := range l.All() {
		if err != nil {
			t.Fatalf("All error = %v", err)
		}
		if tok.Kind == KindQuote || tok.Kind == KindLeftSqBracket || tok.Kind == KindGreaterBracket {
			state, _ := l.State()
			states = append(states, state)
		}
	}
	want := []State{StateInternalSubset, StateEntityList, StateInEntityType, StateInternalSubset, StateOutsideTag}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, want %v", states, want)
		}
	}
}
