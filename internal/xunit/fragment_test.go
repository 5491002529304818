package xunit

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"ptx/internal/domain"
)

func TestSplitID(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		classname string
		short     string
	}{
		{
			name:      "module class method",
			id:        "pkg.UserTest.test_login",
			classname: "pkg.UserTest",
			short:     "test_login",
		},
		{
			name:      "single separator",
			id:        "UserTest.test_login",
			classname: "UserTest",
			short:     "test_login",
		},
		{
			name:      "no separator",
			id:        "test_login",
			classname: "",
			short:     "test_login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classname, short := SplitID(tt.id)
			if classname != tt.classname || short != tt.short {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.classname, tt.short, classname, short)
			}
		})
	}
}

func TestQuoteAttr(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{name: "plain", in: "boom", expected: `"boom"`},
		{name: "ampersand", in: "a&b", expected: `"a&amp;b"`},
		{name: "angle brackets", in: "<tag>", expected: `"&lt;tag&gt;"`},
		{name: "double quote", in: `say "hi"`, expected: `"say &quot;hi&quot;"`},
		{name: "newline", in: "a\nb", expected: `"a&#10;b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuoteAttr(tt.in); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestEscapeCDATA(t *testing.T) {
	in := "before]]>after"
	got := EscapeCDATA(in)
	if strings.Contains(strings.ReplaceAll(got, "]]>]]&gt;<![CDATA[", ""), "]]>") {
		t.Errorf("unescaped CDATA terminator in %q", got)
	}

	// The escaped text must survive a real XML parser when wrapped.
	doc := "<tb><![CDATA[" + got + "]]></tb>"
	var parsed struct {
		Text string `xml:",chardata"`
	}
	if err := xml.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("escaped CDATA is not parseable: %v", err)
	}
}

func TestTestcase_Failure(t *testing.T) {
	started := time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)
	o := domain.TestOutcome{
		ID:       "pkg.MathTest.test_divide",
		Kind:     domain.KindFailure,
		Started:  started,
		Duration: 12 * time.Millisecond,
		Exc: &domain.ExceptionInfo{
			Type:      "AssertionError",
			Message:   "boom",
			Traceback: "line1\nline2",
		},
	}

	frag := Testcase(o)

	for _, want := range []string{
		`classname="pkg.MathTest"`,
		`name="test_divide"`,
		`time="0.012"`,
		`started="2025-03-14 09:26:53"`,
		`<failure type="AssertionError" message="boom">`,
		"<![CDATA[line1\nline2]]>",
		"</failure></testcase>",
	} {
		if !strings.Contains(frag, want) {
			t.Errorf("fragment missing %q:\n%s", want, frag)
		}
	}
}

func TestTestcase_SuccessWithCapturedOutput(t *testing.T) {
	o := domain.TestOutcome{
		ID:       "pkg.MathTest.test_add",
		Kind:     domain.KindSuccess,
		Started:  time.Now(),
		Duration: 10 * time.Millisecond,
		Stdout:   "computed 4",
	}

	frag := Testcase(o)
	if strings.Contains(frag, "<failure") || strings.Contains(frag, "<error") {
		t.Errorf("success fragment must not carry a failure/error child: %s", frag)
	}
	if !strings.Contains(frag, "<system-out><![CDATA[computed 4]]></system-out>") {
		t.Errorf("expected system-out child, got: %s", frag)
	}
}

func TestTestcase_WellFormedForHostileInput(t *testing.T) {
	tests := []struct {
		name string
		o    domain.TestOutcome
	}{
		{
			name: "special characters in id and message",
			o: domain.TestOutcome{
				ID:   `pkg.Weird<&>Test.test_"quotes"`,
				Kind: domain.KindError,
				Exc: &domain.ExceptionInfo{
					Type:      "Kaboom<Error>",
					Message:   `a & b < c > d "e"`,
					Traceback: "tb",
				},
				Started: time.Now(),
			},
		},
		{
			name: "cdata terminator in traceback",
			o: domain.TestOutcome{
				ID:   "pkg.T.test_cdata",
				Kind: domain.KindFailure,
				Exc: &domain.ExceptionInfo{
					Type:      "E",
					Message:   "m",
					Traceback: "evil ]]> payload",
				},
				Started: time.Now(),
			},
		},
		{
			name: "invalid utf8 in captured output",
			o: domain.TestOutcome{
				ID:      "pkg.T.test_bytes",
				Kind:    domain.KindSuccess,
				Started: time.Now(),
				Stdout:  "ok\xff\xfe",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := Testcase(tt.o)
			var parsed struct {
				ClassName string `xml:"classname,attr"`
				Name      string `xml:"name,attr"`
			}
			if err := xml.Unmarshal([]byte(frag), &parsed); err != nil {
				t.Fatalf("fragment is not well-formed XML: %v\n%s", err, frag)
			}
			if parsed.Name == "" {
				t.Errorf("name attribute lost in %s", frag)
			}
		})
	}
}
