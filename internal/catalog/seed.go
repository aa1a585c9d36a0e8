package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akukesepian/backend/internal/models"
	"github.com/akukesepian/backend/internal/repository"
)

// Seed inserts any persona from Personas that is not present yet, keyed on
// name. Safe to run on every startup.
func Seed(ctx context.Context, characters *repository.CharacterRepository, log zerolog.Logger) error {
	for _, persona := range Personas {
		_, err := characters.FindByName(ctx, persona.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrCharacterNotFound) {
			return fmt.Errorf("lookup persona %q: %w", persona.Name, err)
		}

		persona.IsActive = true
		if _, err := characters.Insert(ctx, persona); err != nil {
			return fmt.Errorf("seed persona %q: %w", persona.Name, err)
		}
		log.Info().Str("persona", persona.Name).Msg("seeded persona")
	}

	return nil
}

// PersonaByName looks a seed persona up without touching the database,
// used by tests and the fallback generator defaults.
func PersonaByName(name string) (models.Character, bool) {
	for _, persona := range Personas {
		if persona.Name == name {
			return persona, true
		}
	}
	return models.Character{}, false
}
