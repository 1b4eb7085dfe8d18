package render

import (
	"bytes"
	"fmt"

	"github.com/jhillyerd/enmime/v2"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
)

// Placeholder content for each leaf of a skeleton message.
const (
	samplePlain    = "This is the plain text body.\r\n"
	sampleHTML     = "<html><body><p>This is the HTML body.</p><img src=\"cid:image1@rfcpicker\"></body></html>\r\n"
	sampleCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//rfcpicker//EN\r\nMETHOD:REQUEST\r\nEND:VCALENDAR\r\n"
	sampleForward  = "Subject: Forwarded message\r\nContent-Type: text/plain\r\n\r\nOriginal body.\r\n"
	embeddedCID    = "image1@rfcpicker"
)

// 1x1 transparent PNG.
var samplePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x60, 0x00, 0x02, 0x00,
	0x00, 0x05, 0x00, 0x01, 0xe9, 0xfa, 0xdc, 0xd8, 0x00, 0x00, 0x00, 0x00,
	0x49, 0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

var sampleAttachment = []byte("attachment payload\n")

// MIME renders r as a skeleton RFC 5322 message with placeholder content.
// Boundaries are derived from the tree position so output is stable.
func MIME(r mimestruct.Result) ([]byte, error) {
	root := MIMEPart(r)
	root.Header.Set("MIME-Version", "1.0")
	root.Header.Set("Subject", fmt.Sprintf("rfcpicker skeleton: %s", r.Structure.Label()))

	var buf bytes.Buffer
	if err := root.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode %s skeleton: %w", r.Structure, err)
	}
	return buf.Bytes(), nil
}

// MIMEPart builds the enmime part tree for r without encoding it.
func MIMEPart(r mimestruct.Result) *enmime.Part {
	if r.Structure == mimestruct.StructureSimple {
		if len(r.Children) == 0 {
			p := enmime.NewPart(mimestruct.PartPlainText.MediaType())
			p.Charset = "utf-8"
			return p
		}
		return buildPart(r.Children[0], "0")
	}
	return buildPart(r.Root(), "0")
}

func buildPart(n mimestruct.Node, path string) *enmime.Part {
	p := enmime.NewPart(n.Part.MediaType())
	if n.Part.IsGroup() {
		p.Boundary = "rfcpicker-" + path
		for i, c := range n.Children {
			p.AddChild(buildPart(c, fmt.Sprintf("%s-%d", path, i)))
		}
		return p
	}

	switch n.Part {
	case mimestruct.PartPlainText:
		p.Charset = "utf-8"
		p.Content = []byte(samplePlain)
	case mimestruct.PartHTMLText:
		p.Charset = "utf-8"
		p.Content = []byte(sampleHTML)
	case mimestruct.PartCalendar:
		p.Charset = "utf-8"
		p.Content = []byte(sampleCalendar)
	case mimestruct.PartEmbedded:
		p.Disposition = "inline"
		p.ContentID = embeddedCID
		p.FileName = "image1.png"
		p.Content = samplePNG
	case mimestruct.PartForward:
		p.Disposition = "attachment"
		p.FileName = "forwarded.eml"
		p.Content = []byte(sampleForward)
	case mimestruct.PartAttachments:
		p.Disposition = "attachment"
		p.FileName = "attachment.bin"
		p.Content = sampleAttachment
	}
	return p
}
