package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplejavamail/rfcpicker/internal/mimestruct"
	"github.com/simplejavamail/rfcpicker/internal/render"
)

const alternativeMessage = "From: a@example.com\r\n" +
	"To: b@example.com\r\n" +
	"Subject: hello\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"hi\r\n" +
	"--b1\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<p>hi</p>\r\n" +
	"--b1--\r\n"

func TestFromReader_Alternative(t *testing.T) {
	rep, err := FromReader(strings.NewReader(alternativeMessage))
	require.NoError(t, err)

	assert.Equal(t, mimestruct.Features{PlainText: true, HTMLText: true}, rep.Features)
	assert.Equal(t, mimestruct.StructureAlternative, rep.Recommended.Structure)
	assert.Equal(t, "multipart/alternative", rep.ActualRoot)
	assert.True(t, rep.RootsAgree)
	require.Len(t, rep.Parts, 2)
	assert.Equal(t, "0.1", rep.Parts[1].Path)
	assert.Equal(t, mimestruct.PartHTMLText, rep.Parts[1].Kind)
}

const misfiledAttachment = "From: a@example.com\r\n" +
	"Subject: report\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/related; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"see attached\r\n" +
	"--b1\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"report.pdf\"\r\n" +
	"\r\n" +
	"%PDF-1.4\r\n" +
	"--b1--\r\n"

func TestFromReader_RootMismatch(t *testing.T) {
	rep, err := FromReader(strings.NewReader(misfiledAttachment))
	require.NoError(t, err)

	assert.Equal(t, mimestruct.Features{PlainText: true, Attachments: true}, rep.Features)
	assert.Equal(t, mimestruct.StructureMixed, rep.Recommended.Structure)
	assert.Equal(t, "multipart/mixed", rep.ExpectedRoot)
	assert.False(t, rep.RootsAgree)
	assert.Equal(t, "report.pdf", rep.Parts[1].FileName)
}

func TestFromReader_SinglePart(t *testing.T) {
	msg := "Subject: plain\r\nContent-Type: text/html\r\n\r\n<b>x</b>\r\n"
	rep, err := FromReader(strings.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, mimestruct.StructureSimple, rep.Recommended.Structure)
	assert.Equal(t, "text/html", rep.ExpectedRoot)
	assert.True(t, rep.RootsAgree)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ct, disp, cid string
		want          mimestruct.Part
	}{
		{"text/plain", "", "", mimestruct.PartPlainText},
		{"TEXT/HTML", "", "", mimestruct.PartHTMLText},
		{"text/calendar", "inline", "", mimestruct.PartCalendar},
		{"text/plain", "attachment", "", mimestruct.PartAttachments},
		{"image/png", "inline", "", mimestruct.PartEmbedded},
		{"image/png", "", "logo@x", mimestruct.PartEmbedded},
		{"image/png", "attachment", "logo@x", mimestruct.PartAttachments},
		{"application/zip", "", "", mimestruct.PartAttachments},
		{"message/rfc822", "attachment", "", mimestruct.PartForward},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.ct, tt.disp, tt.cid), "%s/%s/%s", tt.ct, tt.disp, tt.cid)
	}
}

// Every skeleton message rendered for a feature set must be detected as
// that same feature set and agree on the root.
func TestSkeletonRoundTrip(t *testing.T) {
	for _, f := range mimestruct.AllFeatures() {
		if f.EmbeddedContent && !f.HTMLText {
			continue
		}
		if f == (mimestruct.Features{}) {
			continue
		}
		r := mimestruct.MustDetermine(f)
		raw, err := render.MIME(r)
		require.NoError(t, err, f.String())

		rep, err := FromReader(strings.NewReader(string(raw)))
		require.NoError(t, err, f.String())
		assert.Equal(t, f, rep.Features, f.String())
		assert.Equal(t, r.Structure, rep.Recommended.Structure, f.String())
		assert.True(t, rep.RootsAgree, f.String())
	}
}
