package xunit

import (
	"fmt"
	"strings"

	"ptx/internal/domain"
)

// timeLayout renders started/ended attributes with second granularity,
// independent of locale.
const timeLayout = "2006-01-02 15:04:05"

// SplitID splits a hierarchical test id into (classname, name) at the last
// separator. An id without a separator yields an empty classname.
func SplitID(id string) (classname, name string) {
	idx := strings.LastIndex(id, ".")
	if idx < 0 {
		return "", id
	}
	return id[:idx], id[idx+1:]
}

// QuoteAttr escapes s for inclusion as a double-quoted XML attribute value
// and returns it with the surrounding quotes.
func QuoteAttr(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
	return `"` + r.Replace(sanitize(s)) + `"`
}

// EscapeCDATA makes s safe to embed inside a CDATA section by splitting any
// literal "]]>" across two sections.
func EscapeCDATA(s string) string {
	return strings.ReplaceAll(sanitize(s), "]]>", "]]>]]&gt;<![CDATA[")
}

// sanitize replaces invalid UTF-8 sequences so a malformed traceback or
// captured output degrades to replacement characters instead of producing
// an unparseable report.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// Testcase renders one finalized <testcase> fragment for a test outcome.
// The fragment is immutable once built; the aggregate store treats it as an
// opaque string.
func Testcase(o domain.TestOutcome) string {
	classname, name := SplitID(o.ID)
	ended := o.Started.Add(o.Duration)

	var b strings.Builder
	fmt.Fprintf(&b, `<testcase classname=%s name=%s time="%.3f" started="%s" ended="%s">`,
		QuoteAttr(classname),
		QuoteAttr(name),
		o.Duration.Seconds(),
		o.Started.Format(timeLayout),
		ended.Format(timeLayout),
	)

	if o.Kind != domain.KindSuccess {
		elem := o.Kind.String()
		excType, excMsg, excTB := "", "", ""
		if o.Exc != nil {
			excType = o.Exc.Type
			excMsg = o.Exc.Message
			excTB = o.Exc.Traceback
		}
		fmt.Fprintf(&b, `<%s type=%s message=%s><![CDATA[%s]]></%s>`,
			elem, QuoteAttr(excType), QuoteAttr(excMsg), EscapeCDATA(excTB), elem)
	}

	if o.Stdout != "" {
		fmt.Fprintf(&b, "<system-out><![CDATA[%s]]></system-out>", EscapeCDATA(o.Stdout))
	}
	if o.Stderr != "" {
		fmt.Fprintf(&b, "<system-err><![CDATA[%s]]></system-err>", EscapeCDATA(o.Stderr))
	}

	b.WriteString("</testcase>")
	return b.String()
}
