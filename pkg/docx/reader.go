package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// RunInfo describes a run read back from a document.
type RunInfo struct {
	Text string
	Bold bool
	Font string
	Size float64 // points, 0 when not set on the run
}

// ParagraphInfo describes a paragraph read back from a document.
type ParagraphInfo struct {
	Text        string
	Runs        []RunInfo
	Bullet      bool
	Centered    bool
	SpaceBefore *float64
	SpaceAfter  *float64
}

// ReadParagraphs reads the paragraphs of the document at path.
func ReadParagraphs(path string) (paragraphs []ParagraphInfo, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read document: %s", path)
		return paragraphs, err
	}

	paragraphs, err = ParseParagraphs(data)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse document: %s", path)
		return paragraphs, err
	}

	return paragraphs, err
}

// ParseParagraphs reads the paragraphs of an in-memory document package.
func ParseParagraphs(data []byte) (paragraphs []ParagraphInfo, err error) {
	var zr *zip.Reader
	zr, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "not a document package")
		return paragraphs, err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name != documentPart {
			continue
		}

		var rc io.ReadCloser
		rc, err = f.Open()
		if err != nil {
			err = errors.Wrapf(err, "failed to open %s", documentPart)
			return paragraphs, err
		}
		docXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			err = errors.Wrapf(err, "failed to read %s", documentPart)
			return paragraphs, err
		}
		break
	}

	if len(docXML) == 0 {
		err = errors.Errorf("no %s found in package", documentPart)
		return paragraphs, err
	}

	paragraphs, err = decodeBody(docXML)
	return paragraphs, err
}

func decodeBody(docXML []byte) (paragraphs []ParagraphInfo, err error) {
	paragraphs = make([]ParagraphInfo, 0)
	dec := xml.NewDecoder(bytes.NewReader(docXML))

	var para *ParagraphInfo
	var run *RunInfo
	inText := false

	for {
		var tok xml.Token
		tok, err = dec.Token()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			err = errors.Wrap(err, "malformed document XML")
			return paragraphs, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "p":
				para = &ParagraphInfo{Runs: make([]RunInfo, 0)}
			case "pStyle":
				if para != nil && attr(t, "val") == BulletStyleID {
					para.Bullet = true
				}
			case "spacing":
				if para != nil && run == nil {
					para.SpaceBefore = pointsAttr(t, "before")
					para.SpaceAfter = pointsAttr(t, "after")
				}
			case "jc":
				if para != nil {
					para.Centered = attr(t, "val") == string(AlignCenter)
				}
			case "r":
				run = &RunInfo{}
			case "rFonts":
				if run != nil {
					run.Font = attr(t, "ascii")
				}
			case "b":
				if run != nil {
					v := attr(t, "val")
					run.Bold = v == "" || v == "1" || v == "true"
				}
			case "sz":
				if run != nil {
					var half float64
					half, _ = strconv.ParseFloat(attr(t, "val"), 64)
					run.Size = half / 2
				}
			case "t":
				inText = true
			}

		case xml.CharData:
			if inText && run != nil {
				run.Text += string(t)
			}

		case xml.EndElement:
			if t.Name.Space != nsMain {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "r":
				if para != nil && run != nil {
					para.Runs = append(para.Runs, *run)
					para.Text += run.Text
				}
				run = nil
			case "p":
				if para != nil {
					paragraphs = append(paragraphs, *para)
				}
				para = nil
			}
		}
	}

	return paragraphs, err
}

func attr(el xml.StartElement, local string) (value string) {
	for _, a := range el.Attr {
		if a.Name.Local == local && (a.Name.Space == nsMain || a.Name.Space == "") {
			value = a.Value
			return value
		}
	}
	return value
}

func pointsAttr(el xml.StartElement, local string) (pt *float64) {
	raw := attr(el, local)
	if raw == "" {
		return pt
	}

	twentieths, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return pt
	}

	value := twentieths / 20
	pt = &value
	return pt
}
