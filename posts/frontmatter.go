package posts

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// yamlFormat is the only accepted front-matter block: YAML between two
// "---" lines at the top of the file.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

type metadata struct {
	Title   string `yaml:"title"`
	Date    string `yaml:"date"`
	Excerpt string `yaml:"excerpt"`
}

func (m metadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Date, validation.Required),
	)
}

// parseDocument splits source into validated metadata and the markdown body.
func parseDocument(source []byte) (metadata, []byte, error) {
	var meta metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil {
		return metadata{}, nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	if err := meta.Validate(); err != nil {
		return metadata{}, nil, fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return meta, body, nil
}
