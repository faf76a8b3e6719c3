package loader

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"github.com/napolitain/solver-slayer/internal/models"
)

// ParseYAML decodes a YAML task file.
func ParseYAML(data []byte) (*TaskFile, error) {
	var dto taskFileDTO
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, err.Error()), "format", "yaml")
	}
	return dto.toTaskFile()
}
