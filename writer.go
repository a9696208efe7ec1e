package bookstat

import (
	"bufio"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/bcongdon/bookstat/internal/pkg/bookfs"
	"go.yaml.in/yaml/v3"
)

// Output formats for the statistics artifact.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StatisticsWriter serializes ranked statistics.
type StatisticsWriter interface {
	WriteStatistics(w io.Writer, items []StatisticsItem) error
	Extension() string
}

// WriterFor returns the StatisticsWriter for the named format.
func WriterFor(format string) (StatisticsWriter, error) {
	switch strings.ToLower(format) {
	case FormatXML, "":
		return xmlWriter{}, nil
	case FormatJSON:
		return jsonWriter{}, nil
	case FormatYAML, "yml":
		return yamlWriter{}, nil
	}
	return nil, fmt.Errorf("unsupported output format %q", format)
}

type xmlStatistics struct {
	XMLName xml.Name         `xml:"statistics"`
	Items   []StatisticsItem `xml:"item"`
}

type xmlWriter struct{}

func (xmlWriter) Extension() string { return "xml" }

func (xmlWriter) WriteStatistics(w io.Writer, items []StatisticsItem) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(xmlStatistics{Items: items}); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type jsonWriter struct{}

func (jsonWriter) Extension() string { return "json" }

func (jsonWriter) WriteStatistics(w io.Writer, items []StatisticsItem) error {
	if items == nil {
		items = []StatisticsItem{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

type yamlWriter struct{}

func (yamlWriter) Extension() string { return "yaml" }

func (yamlWriter) WriteStatistics(w io.Writer, items []StatisticsItem) error {
	if items == nil {
		items = []StatisticsItem{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_\-]`)

// outputFilename returns the artifact name for attribute, e.g.
// "statistics_by_genre.xml".
func outputFilename(attribute Attribute, sw StatisticsWriter) string {
	safe := strings.ToLower(unsafeFilenameChars.ReplaceAllString(string(attribute), "_"))
	return fmt.Sprintf("statistics_by_%s.%s", safe, sw.Extension())
}

// writeArtifact writes items to filePath. The artifact is either written in
// full or not at all.
func writeArtifact(fs bookfs.FileSystem, filePath string, sw StatisticsWriter, items []StatisticsItem) error {
	out, err := fs.OpenWriter(filePath)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(out)
	if err := sw.WriteStatistics(buf, items); err != nil {
		bookfs.Discard(out)
		return err
	}
	if err := buf.Flush(); err != nil {
		bookfs.Discard(out)
		return err
	}
	return out.Close()
}
