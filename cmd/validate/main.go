package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/docent/pkg/world"
)

var worldFilenamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.yaml>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	if err := validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

func validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".yaml") && !strings.HasSuffix(baseName, ".yml") {
		return fmt.Errorf("world file must have .yaml extension: %s", baseName)
	}
	nameWithoutExt := strings.TrimSuffix(strings.TrimSuffix(baseName, ".yaml"), ".yml")
	if !worldFilenamePattern.MatchString(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., museum.yaml, not Museum.yaml or my-world.yaml)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	def, err := world.ParseDefinition(data)
	if err != nil {
		return err
	}

	// Building catches object registration problems.
	ix, err := def.Build()
	if err != nil {
		return err
	}

	objects := 0
	for _, r := range ix.Rooms() {
		objects += len(r.Objects)
	}
	fmt.Printf("  %d rooms, %d doors, %d objects\n", len(ix.Rooms()), len(ix.Doors()), objects)

	// Unreachable rooms are legal but almost always a mistake.
	if len(ix.Rooms()) > 1 {
		for _, r := range ix.Rooms() {
			if len(ix.DoorsAt(r.ID)) == 0 {
				fmt.Printf("  warning: room %q has no doors\n", r.ID)
			}
		}
	}

	return nil
}
