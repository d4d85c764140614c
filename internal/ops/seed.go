package ops

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brooksai/slashhub/internal/db"
	"github.com/brooksai/slashhub/internal/errors"
)

// SeedFile is the YAML layout of a registry seed:
//
//	routes:
//	  - label: Not A Media Company
//	    slash: NAMC
//	  - label: Driver
//	    slash: MyCarMindATO/Driver
type SeedFile struct {
	Routes []SeedRoute `yaml:"routes"`
}

// SeedRoute is one official route in a seed file.
type SeedRoute struct {
	Label string `yaml:"label"`
	Slash string `yaml:"slash"`
}

// SeedRegistryInput contains parameters for the SeedRegistry operation.
// Exactly one of Path or Reader is used; Reader wins when both are set.
type SeedRegistryInput struct {
	Path   string
	Reader io.Reader
}

// SeedRegistryOutput contains the result of the SeedRegistry operation.
type SeedRegistryOutput struct {
	Upserted int      `json:"upserted"`
	Routes   []string `json:"routes"`
}

// ParseSeed decodes a YAML seed file and validates every entry. Nothing is
// written when any entry is invalid.
func ParseSeed(r io.Reader) (*SeedFile, error) {
	var seed SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return &seed, nil
		}
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid seed file: %v", err))
	}

	for i, sr := range seed.Routes {
		if _, err := newRegistryEntry(sr.Label, sr.Slash); err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("routes[%d]: slash %q has no usable characters", i, sr.Slash))
		}
	}

	return &seed, nil
}

// SeedRegistry upserts every route in a YAML seed into the official registry.
// The whole file is validated before the first write.
func SeedRegistry(ctx context.Context, database *sql.DB, input SeedRegistryInput) (*SeedRegistryOutput, error) {
	r := input.Reader
	if r == nil {
		if input.Path == "" {
			return nil, errors.NewInvalidRequest("seed path is required")
		}
		f, err := os.Open(input.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewNotFound("seed file", input.Path)
			}
			return nil, errors.NewInternal(err)
		}
		defer f.Close()
		r = f
	}

	seed, err := ParseSeed(r)
	if err != nil {
		return nil, err
	}

	out := &SeedRegistryOutput{Routes: []string{}}
	for _, sr := range seed.Routes {
		e, err := newRegistryEntry(sr.Label, sr.Slash)
		if err != nil {
			return nil, err
		}
		if err := db.UpsertRegistryEntry(ctx, database, e); err != nil {
			return nil, err
		}
		out.Upserted++
		out.Routes = append(out.Routes, e.SlashNorm)
	}

	return out, nil
}
