package hadoopconf

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

type xmlConfiguration struct {
	XMLName    xml.Name
	Properties []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Name        *string `xml:"name"`
	Value       *string `xml:"value"`
	Final       string  `xml:"final,omitempty"`
	Source      string  `xml:"source,omitempty"`
	Description string  `xml:"description,omitempty"`
}

// AddResource reads the XML resource at path and merges it.
// The file is parsed completely before anything is merged, so a malformed
// resource leaves the configuration unchanged.
func (c *Configuration) AddResource(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open resource: %w", err)
	}
	defer f.Close()

	return c.AddResourceReader(path, f)
}

// AddResourceReader parses an XML resource from r and merges it, recording
// name as the source of every key it sets.
func (c *Configuration) AddResourceReader(name string, r io.Reader) error {
	doc, err := decodeResource(xml.NewDecoder(r))
	if err != nil {
		return fmt.Errorf("parse resource %s: %w", name, err)
	}

	for _, p := range doc.Properties {
		if p.Name == nil || p.Value == nil {
			continue
		}
		key := strings.TrimSpace(*p.Name)
		if key == "" {
			continue
		}
		value := strings.TrimSpace(*p.Value)

		if e, ok := c.props[key]; ok && e.Final && e.Value != value {
			c.logger.Warn("ignoring attempt to override final parameter",
				zap.String("key", key),
				zap.String("resource", name),
				zap.String("final_source", e.Source))
			continue
		}
		c.put(key, value, name, strings.TrimSpace(p.Final) == "true")
	}

	return nil
}

// decodeResource reads a whole document: prolog, a <configuration> root and
// nothing but whitespace, comments or processing instructions after it.
func decodeResource(dec *xml.Decoder) (*xmlConfiguration, error) {
	var root *xml.StartElement
	for root == nil {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			root = &t
		case xml.Directive:
		default:
			if err := checkMisc(tok); err != nil {
				return nil, err
			}
		}
	}
	if root.Name.Local != "configuration" {
		return nil, fmt.Errorf("%w (found <%s>)", ErrBadRoot, root.Name.Local)
	}

	var doc xmlConfiguration
	if err := dec.DecodeElement(&doc, root); err != nil {
		return nil, err
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		if err != nil {
			return nil, err
		}
		if err := checkMisc(tok); err != nil {
			return nil, err
		}
	}
}

// checkMisc accepts the tokens allowed around the root element.
func checkMisc(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.Comment, xml.ProcInst:
		return nil
	case xml.CharData:
		if len(bytes.TrimSpace(t)) == 0 {
			return nil
		}
		return fmt.Errorf("%w: text %q", ErrOutsideRoot, bytes.TrimSpace(t))
	case xml.StartElement:
		return fmt.Errorf("%w: element <%s>", ErrOutsideRoot, t.Name.Local)
	default:
		return fmt.Errorf("%w: %T", ErrOutsideRoot, tok)
	}
}

// WriteXML writes every entry, unexpanded and in key order, as a
// <configuration> document.
func (c *Configuration) WriteXML(w io.Writer) error {
	doc := xmlConfiguration{
		XMLName:    xml.Name{Local: "configuration"},
		Properties: make([]xmlProperty, 0, len(c.keys)),
	}
	for _, e := range c.Entries() {
		name, value := e.Key, e.Value
		p := xmlProperty{Name: &name, Value: &value, Source: e.Source}
		if e.Final {
			p.Final = "true"
		}
		doc.Properties = append(doc.Properties, p)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
