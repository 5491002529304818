package report

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Suite mirrors the on-disk testsuite document for tooling that reads a
// finished report back, e.g. the failures viewer.
type Suite struct {
	XMLName  xml.Name `xml:"testsuite"`
	Name     string   `xml:"name,attr"`
	Tests    int      `xml:"tests,attr"`
	Errors   int      `xml:"errors,attr"`
	Failures int      `xml:"failures,attr"`
	Skip     int      `xml:"skip,attr"`
	Cases    []Case   `xml:"testcase"`
}

// Case is one testcase element read back from a report
type Case struct {
	ClassName string  `xml:"classname,attr"`
	Name      string  `xml:"name,attr"`
	Time      float64 `xml:"time,attr"`
	Started   string  `xml:"started,attr"`
	Ended     string  `xml:"ended,attr"`
	Failure   *Detail `xml:"failure"`
	Error     *Detail `xml:"error"`
	Skipped   *Detail `xml:"skipped"`
	SystemOut string  `xml:"system-out"`
	SystemErr string  `xml:"system-err"`
}

// Detail is the failure/error/skipped child of a testcase
type Detail struct {
	Type    string `xml:"type,attr"`
	Message string `xml:"message,attr"`
	Text    string `xml:",chardata"`
}

// ID reassembles the case's hierarchical test id
func (c Case) ID() string {
	if c.ClassName == "" {
		return c.Name
	}
	return c.ClassName + "." + c.Name
}

// Load reads a finished report back from disk
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var suite Suite
	if err := xml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &suite, nil
}
