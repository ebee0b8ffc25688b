package output

import "github.com/gorewood/mendeley2bib/internal/bib"

// Report prints a conversion issue: warnings always, informational
// issues only in verbose mode. No-op in JSON mode, where issues are part
// of the structured result.
func (p *Printer) Report(issue bib.Issue) {
	if p.json {
		return
	}
	switch issue.Severity {
	case bib.SeverityWarning:
		p.Warn("%s", issue.Message)
	default:
		if p.verbose {
			p.Info("%s", issue.Message)
		}
	}
}
