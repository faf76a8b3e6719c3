package loader

import (
	"github.com/BurntSushi/toml"
	"go.trai.ch/zerr"

	"github.com/napolitain/solver-slayer/internal/models"
)

// ParseTOML decodes a TOML task file. Tasks are written as [[tasks]] tables.
func ParseTOML(data []byte) (*TaskFile, error) {
	var dto taskFileDTO
	if _, err := toml.Decode(string(data), &dto); err != nil {
		return nil, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, err.Error()), "format", "toml")
	}
	return dto.toTaskFile()
}
