package playlist

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// WPL structure based on Windows Media Player playlist format
type WPL struct {
	XMLName xml.Name `xml:"smil"`
	Head    WPLHead  `xml:"head"`
	Body    WPLBody  `xml:"body"`
}

type WPLHead struct {
	Meta  []WPLMeta `xml:"meta"`
	Title string    `xml:"title"`
}

type WPLMeta struct {
	Name    string `xml:"name,attr"`
	Content string `xml:"content,attr"`
}

type WPLBody struct {
	Seq WPLSeq `xml:"seq"`
}

type WPLSeq struct {
	Media []WPLMedia `xml:"media"`
}

type WPLMedia struct {
	Src string `xml:"src,attr"`
}

// wplHeader is the processing instruction Windows Media Player writes ahead
// of the smil element.
const wplHeader = `<?wms version="1.0"?>` + "\n"

// EncodeWPL writes the entries of s as a WPL playlist titled title.
func EncodeWPL(w io.Writer, title string, s State) error {
	doc := WPL{
		Head: WPLHead{
			Meta: []WPLMeta{
				{Name: "Generator", Content: "folder-playlist"},
				{Name: "ItemCount", Content: strconv.Itoa(s.Len())},
			},
			Title: title,
		},
	}
	doc.Body.Seq.Media = make([]WPLMedia, 0, s.Len())
	for _, p := range s.Paths() {
		doc.Body.Seq.Media = append(doc.Body.Seq.Media, WPLMedia{Src: p})
	}

	if _, err := io.WriteString(w, wplHeader); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode wpl: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
