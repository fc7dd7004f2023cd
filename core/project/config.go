package project

import (
	"fmt"
	"strings"
	"time"

	"dependency-manager/core/maven"
)

// Config holds the project layout and tracked dependencies.
type Config struct {
	// Descriptor is the build descriptor rewritten in place.
	Descriptor string `mapstructure:"descriptor" default:"build.gradle.kts"`
	// BackupDir receives timestamped descriptor backups. It is never pruned.
	BackupDir string `mapstructure:"backup_dir" default:"gradle/backups"`
	// LibraryDirs are scanned, in order, for vendored archives.
	LibraryDirs []string `mapstructure:"library_dirs" default:"sparkleplayer/libs,sparkleplayer/libs/musique"`
	// RecoveryScript is the path of the generated rollback script.
	RecoveryScript string `mapstructure:"recovery_script" default:"recover-dependencies.sh"`
	// StagingDir holds temporary downloads during a pass.
	StagingDir string `mapstructure:"staging_dir" default:"."`
	// Tracked lists "group:artifact" coordinates declared in the descriptor.
	Tracked []string `mapstructure:"tracked" default:"commons-beanutils:commons-beanutils,commons-codec:commons-codec,commons-collections:commons-collections,commons-lang:commons-lang,commons-logging:commons-logging,net.sf.ezmorph:ezmorph,net.sf.json-lib:json-lib,log4j:log4j,org.apache.derby:derby,com.h3xstream.findsecbugs:findsecbugs-plugin"`
	// Archives lists "group:artifact[:classifier]" coordinates vendored as local archives.
	Archives []string `mapstructure:"archives" default:"commons-beanutils:commons-beanutils,commons-codec:commons-codec,commons-collections:commons-collections,commons-lang:commons-lang,commons-logging:commons-logging,net.sf.ezmorph:ezmorph,net.sf.json-lib:json-lib:jdk15,log4j:log4j,org.apache.derby:derby,org.jaudiotagger:jaudiotagger"`
	// BuildCommand is the build wrapper used for post-update validation.
	BuildCommand string `mapstructure:"build_command" default:"./gradlew"`
	// BuildTimeout bounds each build invocation.
	BuildTimeout time.Duration `mapstructure:"build_timeout" default:"60s"`
	// Concurrency bounds parallel repository lookups.
	Concurrency int `mapstructure:"concurrency" default:"4"`
}

// Archive is a vendored archive tracked for updates.
type Archive struct {
	Coordinate maven.Coordinate
	// Classifier is the optional filename suffix (e.g. "jdk15") preserved across updates.
	Classifier string
}

func (a Archive) String() string {
	if a.Classifier == "" {
		return a.Coordinate.String()
	}
	return a.Coordinate.String() + ":" + a.Classifier
}

// TrackedCoordinates parses Tracked, dropping duplicates while keeping order.
func (c Config) TrackedCoordinates() ([]maven.Coordinate, error) {
	seen := make(map[maven.Coordinate]struct{}, len(c.Tracked))
	coords := make([]maven.Coordinate, 0, len(c.Tracked))
	for _, raw := range c.Tracked {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		coord, err := maven.ParseCoordinate(raw)
		if err != nil {
			return nil, fmt.Errorf("project.tracked: %w", err)
		}
		if _, dup := seen[coord]; dup {
			continue
		}
		seen[coord] = struct{}{}
		coords = append(coords, coord)
	}
	return coords, nil
}

// TrackedArchives parses Archives, dropping duplicates while keeping order.
func (c Config) TrackedArchives() ([]Archive, error) {
	seen := make(map[maven.Coordinate]struct{}, len(c.Archives))
	archives := make([]Archive, 0, len(c.Archives))
	for _, raw := range c.Archives {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ":")
		if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("project.archives: invalid entry %q: expected group:artifact[:classifier]", raw)
		}
		a := Archive{Coordinate: maven.Coordinate{Group: parts[0], Artifact: parts[1]}}
		if len(parts) == 3 {
			a.Classifier = parts[2]
		}
		if _, dup := seen[a.Coordinate]; dup {
			continue
		}
		seen[a.Coordinate] = struct{}{}
		archives = append(archives, a)
	}
	return archives, nil
}

// Validate checks that the configuration can drive a pass.
func (c Config) Validate() error {
	if c.Descriptor == "" {
		return fmt.Errorf("project.descriptor is required")
	}
	if c.BackupDir == "" {
		return fmt.Errorf("project.backup_dir is required")
	}
	if _, err := c.TrackedCoordinates(); err != nil {
		return err
	}
	if _, err := c.TrackedArchives(); err != nil {
		return err
	}
	return nil
}
