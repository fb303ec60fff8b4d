package lsp

import (
	"errors"
	"io"
	"strings"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"pasc/internal/compiler"
	"pasc/internal/diag"
)

var log = commonlog.GetLogger("pasc.lsp")

// SourceExt is the extension of documents the server compiles.
const SourceExt = ".pas"

func IsSource(uri string) bool {
	return strings.HasSuffix(strings.ToLower(uri), SourceExt)
}

// Check compiles text and reports its first error, if any. Nothing is
// written anywhere.
func Check(uri, text string) []diag.Diagnostic {
	err := compiler.Compile(documentName(uri), text, io.Discard, compiler.Options{})
	if err == nil {
		return nil
	}
	var cerr *compiler.Error
	if errors.As(err, &cerr) {
		log.Debugf("%s", cerr.Error())
		return []diag.Diagnostic{cerr.Diag}
	}
	return []diag.Diagnostic{diag.FromError(err, diag.Range{Line: 1, Col: 1})}
}

func ToLspDiagnostics(text string, ds []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(ds))
	for _, d := range ds {
		severity := protocol.DiagnosticSeverityError
		switch d.Severity {
		case diag.SeverityWarning:
			severity = protocol.DiagnosticSeverityWarning
		case diag.SeverityInfo:
			severity = protocol.DiagnosticSeverityInformation
		}

		pd := protocol.Diagnostic{
			Range:    diagnosticRange(text, d.Range),
			Severity: &severity,
			Source:   ptrString("pasc"),
			Message:  d.Message,
		}
		if d.Code != "" {
			code := protocol.IntegerOrString{Value: d.Code}
			pd.Code = &code
		}
		out = append(out, pd)
	}
	return out
}

func ptrString(s string) *string { return &s }
