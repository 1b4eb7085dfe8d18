// Package detect derives content features from an existing message and
// compares its layout with the recommended structure.
package detect

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhillyerd/enmime/v2"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// PartInfo describes one leaf part of an inspected message.
type PartInfo struct {
	Path        string
	ContentType string
	Disposition string
	FileName    string
	Size        int
	Kind        mimestruct.Part
}

// Report is the outcome of inspecting a message.
type Report struct {
	Features      mimestruct.Features
	ActualRoot    string
	ExpectedRoot  string
	Recommended   mimestruct.Result
	Parts         []PartInfo
	RootsAgree    bool
	ParseWarnings []string
}

// FromReader parses a raw RFC 5322 message and inspects it.
func FromReader(r io.Reader) (*Report, error) {
	env, err := enmime.ReadEnvelope(r)
	if err != nil {
		return nil, fmt.Errorf("parse message: %w", err)
	}
	return FromEnvelope(env)
}

// FromEnvelope inspects an already parsed message.
func FromEnvelope(env *enmime.Envelope) (*Report, error) {
	if env == nil || env.Root == nil {
		return nil, fmt.Errorf("message has no MIME root")
	}

	rep := &Report{ActualRoot: strings.ToLower(env.Root.ContentType)}
	walk(env.Root, "0", rep)

	for _, e := range env.Errors {
		rep.ParseWarnings = append(rep.ParseWarnings, e.Error())
	}

	res, err := mimestruct.Determine(rep.Features)
	if err != nil {
		return nil, err
	}
	rep.Recommended = res
	rep.ExpectedRoot = ExpectedRootMediaType(res)
	rep.RootsAgree = rep.ActualRoot == rep.ExpectedRoot
	return rep, nil
}

// ExpectedRootMediaType returns the top-level Content-Type a message laid
// out as r carries. An empty simple message is sent as text/plain.
func ExpectedRootMediaType(r mimestruct.Result) string {
	if r.Structure != mimestruct.StructureSimple {
		return r.Structure.RootPart().MediaType()
	}
	if len(r.Children) == 0 {
		return mimestruct.PartPlainText.MediaType()
	}
	return r.Children[0].Part.MediaType()
}

func walk(p *enmime.Part, path string, rep *Report) {
	if p.FirstChild != nil {
		i := 0
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c, fmt.Sprintf("%s.%d", path, i), rep)
			i++
		}
		return
	}

	kind := Classify(p.ContentType, p.Disposition, p.ContentID)
	switch kind {
	case mimestruct.PartPlainText:
		rep.Features.PlainText = true
	case mimestruct.PartHTMLText:
		rep.Features.HTMLText = true
	case mimestruct.PartCalendar:
		rep.Features.CalendarEvent = true
	case mimestruct.PartEmbedded:
		rep.Features.EmbeddedContent = true
	case mimestruct.PartForward:
		rep.Features.EmailForward = true
	case mimestruct.PartAttachments:
		rep.Features.Attachments = true
	}

	rep.Parts = append(rep.Parts, PartInfo{
		Path:        path,
		ContentType: p.ContentType,
		Disposition: p.Disposition,
		FileName:    p.FileName,
		Size:        len(p.Content),
		Kind:        kind,
	})
}

// Classify maps a leaf part's headers to the content kind it represents.
func Classify(contentType, disposition, contentID string) mimestruct.Part {
	ct := strings.ToLower(contentType)
	disp := strings.ToLower(disposition)

	if ct == "message/rfc822" {
		return mimestruct.PartForward
	}
	if disp == "attachment" {
		return mimestruct.PartAttachments
	}
	switch ct {
	case "text/plain", "":
		return mimestruct.PartPlainText
	case "text/html":
		return mimestruct.PartHTMLText
	case "text/calendar":
		return mimestruct.PartCalendar
	}
	if contentID != "" || disp == "inline" {
		return mimestruct.PartEmbedded
	}
	return mimestruct.PartAttachments
}
