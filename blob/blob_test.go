package blob

import (
	"errors"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

func TestParseRoundTrip(t *testing.T) {
	c := qt.New(t)
	var sb strings.Builder
	for i := 0; i < field.BlobLen; i++ {
		if i == field.BlobLen-2 {
			sb.WriteString(strings.Repeat("0", 63) + "1")
		} else if i == field.BlobLen-1 {
			sb.WriteString(strings.Repeat("0", 63) + "2")
		} else {
			sb.WriteString(strings.Repeat("0", 63) + "2")
		}
	}
	b, err := Parse(sb.String())
	c.Assert(err, qt.IsNil)
	qt.Assert(c, len(b), qt.Equals, field.BlobLen)
	qt.Assert(c, b[field.BlobLen-2].String(), qt.Equals, "1")
	qt.Assert(c, b[field.BlobLen-1].String(), qt.Equals, "2")
}

func TestParseTrimsWhitespace(t *testing.T) {
	c := qt.New(t)
	body := strings.Repeat("00", field.BlobLen*32)
	b, err := Parse("  " + body + "\n")
	c.Assert(err, qt.IsNil)
	qt.Assert(c, len(b), qt.Equals, field.BlobLen)
}

func TestParseWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := Parse("deadbeef")
	c.Assert(err, qt.Not(qt.IsNil))
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	qt.Assert(c, appErr.Kind, qt.Equals, apperr.KindMalformedBlobLength)
}

func TestParseBadHex(t *testing.T) {
	c := qt.New(t)
	bad := strings.Repeat("0", field.BlobLen*64)
	bad = "zz" + bad[2:]
	_, err := Parse(bad)
	c.Assert(err, qt.Not(qt.IsNil))
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	qt.Assert(c, appErr.Kind, qt.Equals, apperr.KindMalformedBlobHex)
}
