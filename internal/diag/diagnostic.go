package diag

import (
	"paracell/internal/source"
)

type Note struct {
	Span source.Span `json:"span" msgpack:"span"`
	Msg  string      `json:"msg" msgpack:"msg"`
}

type Diagnostic struct {
	Severity Severity    `json:"severity" msgpack:"sev"`
	Code     Code        `json:"code" msgpack:"code"`
	Message  string      `json:"message" msgpack:"msg"`
	Primary  source.Span `json:"primary" msgpack:"primary"`
	Notes    []Note      `json:"notes,omitempty" msgpack:"notes,omitempty"`
}

// WithFile rebinds every span to file. Used when a cached diagnostic is replayed
// against a FileSet that assigned a different FileID.
func (d Diagnostic) WithFile(file source.FileID) Diagnostic {
	d.Primary.File = file
	if len(d.Notes) > 0 {
		notes := make([]Note, len(d.Notes))
		for i, n := range d.Notes {
			n.Span.File = file
			notes[i] = n
		}
		d.Notes = notes
	}
	return d
}
