package sink

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aescanero/confpatch/pkg/hadoopconf"
)

// Output formats understood by Encode.
const (
	FormatXML        = "xml"
	FormatYAML       = "yaml"
	FormatProperties = "properties"
)

// ErrUnknownFormat is returned for a format other than xml, yaml or properties.
var ErrUnknownFormat = errors.New("unknown format")

// Sink receives a resolved configuration
type Sink interface {
	Write(ctx context.Context, conf *hadoopconf.Configuration) error
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{FormatXML, FormatYAML, FormatProperties}
}

// Encode writes conf to w in format, keeping key order. Values are written
// unexpanded.
func Encode(w io.Writer, conf *hadoopconf.Configuration, format string) error {
	switch format {
	case FormatXML:
		return conf.WriteXML(w)
	case FormatYAML:
		return encodeYAML(w, conf)
	case FormatProperties:
		return encodeProperties(w, conf)
	default:
		return fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownFormat, format, strings.Join(Formats(), ", "))
	}
}

// encodeYAML writes a flat mapping. A yaml.Node is used instead of a map so
// that key order survives.
func encodeYAML(w io.Writer, conf *hadoopconf.Configuration) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range conf.Entries() {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

var (
	propertiesEscaper    = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	propertiesKeyEscaper = strings.NewReplacer("=", `\=`, ":", `\:`, " ", `\ `)
)

func encodeProperties(w io.Writer, conf *hadoopconf.Configuration) error {
	bw := bufio.NewWriter(w)
	for _, e := range conf.Entries() {
		key := propertiesKeyEscaper.Replace(propertiesEscaper.Replace(e.Key))
		if _, err := fmt.Fprintf(bw, "%s=%s\n", key, propertiesEscaper.Replace(e.Value)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
