package discovery

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// POMNamespace is the XML namespace of Maven 4.0.0 descriptors.
const POMNamespace = "http://maven.apache.org/POM/4.0.0"

// Descriptor holds the identity fields read from a pom.xml.
type Descriptor struct {
	ArtifactID string
	Packaging  string
}

// pomDocument only maps the direct children of <project> that discovery
// needs; nested artifactIds (parent, dependencies) are ignored.
type pomDocument struct {
	XMLName    xml.Name `xml:"http://maven.apache.org/POM/4.0.0 project"`
	ArtifactID string   `xml:"http://maven.apache.org/POM/4.0.0 artifactId"`
	Packaging  string   `xml:"http://maven.apache.org/POM/4.0.0 packaging"`
}

// ParseDescriptor reads the descriptor at path. Both artifactId and packaging
// must be present and non-blank.
func ParseDescriptor(path string) (Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, &DescriptorError{Path: path, Err: err}
	}

	// Older trees still declare ISO-8859-1 or windows-1252.
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var doc pomDocument
	if err := dec.Decode(&doc); err != nil {
		return Descriptor{}, &DescriptorError{Path: path, Err: fmt.Errorf("parsing XML: %w", err)}
	}

	d := Descriptor{
		ArtifactID: strings.TrimSpace(doc.ArtifactID),
		Packaging:  strings.TrimSpace(doc.Packaging),
	}
	if d.Packaging == "" {
		return Descriptor{}, &DescriptorError{Path: path, Field: "packaging", Err: ErrMissingField}
	}
	if d.ArtifactID == "" {
		return Descriptor{}, &DescriptorError{Path: path, Field: "artifactId", Err: ErrMissingField}
	}

	return d, nil
}
