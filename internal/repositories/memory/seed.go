package memory

import (
	"encoding/json"
	"os"

	"github.com/anonto42/project-showcase/backend/internal/models"
	"github.com/pkg/errors"
)

// Seed is the JSON fixture format accepted by LoadSeed
type Seed struct {
	Users    []models.User    `json:"users"`
	Projects []models.Project `json:"projects"`
}

// LoadSeed reads a fixture file and loads its users and projects into the given stores.
func LoadSeed(path string, users *UserRepository, projects *ProjectRepository) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading seed file %s", path)
	}

	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return errors.Wrapf(err, "decoding seed file %s", path)
	}
	for _, u := range seed.Users {
		users.AddUser(u)
	}
	for _, p := range seed.Projects {
		projects.AddProject(p)
	}
	return nil
}
