package project_test

import (
	"testing"

	"dependency-manager/core/maven"
	"dependency-manager/core/project"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_TrackedCoordinates(t *testing.T) {
	cfg := project.Config{Tracked: []string{"log4j:log4j", " ", "com.example:lib", "log4j:log4j"}}

	coords, err := cfg.TrackedCoordinates()
	require.NoError(t, err)
	assert.Equal(t, []maven.Coordinate{
		{Group: "log4j", Artifact: "log4j"},
		{Group: "com.example", Artifact: "lib"},
	}, coords)

	cfg.Tracked = []string{"broken"}
	_, err = cfg.TrackedCoordinates()
	assert.Error(t, err)
}

func TestConfig_TrackedArchives(t *testing.T) {
	tests := []struct {
		name    string
		entries []string
		want    []project.Archive
		wantErr bool
	}{
		{
			name:    "Plain And Classifier",
			entries: []string{"log4j:log4j", "net.sf.json-lib:json-lib:jdk15"},
			want: []project.Archive{
				{Coordinate: maven.Coordinate{Group: "log4j", Artifact: "log4j"}},
				{Coordinate: maven.Coordinate{Group: "net.sf.json-lib", Artifact: "json-lib"}, Classifier: "jdk15"},
			},
		},
		{
			name:    "Duplicate Dropped",
			entries: []string{"log4j:log4j", "log4j:log4j:other"},
			want:    []project.Archive{{Coordinate: maven.Coordinate{Group: "log4j", Artifact: "log4j"}}},
		},
		{name: "Too Many Parts", entries: []string{"a:b:c:d"}, wantErr: true},
		{name: "Missing Artifact", entries: []string{"a:"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := project.Config{Archives: tt.entries}.TrackedArchives()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArchive_String(t *testing.T) {
	a := project.Archive{Coordinate: maven.Coordinate{Group: "net.sf.json-lib", Artifact: "json-lib"}, Classifier: "jdk15"}
	assert.Equal(t, "net.sf.json-lib:json-lib:jdk15", a.String())
}

func TestConfig_Validate(t *testing.T) {
	cfg := project.Config{Descriptor: "build.gradle.kts", BackupDir: "gradle/backups"}
	assert.NoError(t, cfg.Validate())

	cfg.Descriptor = ""
	assert.Error(t, cfg.Validate())
}
