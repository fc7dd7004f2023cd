// Package config provides configuration management for the dependency manager.
//
// It uses Viper to merge, in increasing precedence: defaults declared in the
// `default:"..."` struct tags of each section, an optional dependency-manager.yaml in the
// working directory, a .env file and environment variables (PROJECT_DESCRIPTOR,
// REPOSITORY_TIMEOUT, ...).
//
// # Configuration Structure
//
//   - Project: descriptor path, backup and library directories, tracked coordinates
//     and archives, build command and timeout
//   - Repository: search and download endpoints, timeouts, rate limit, cache TTL
//   - Log: level and format
//   - Database: history persistence (sqlite or mysql)
//   - Storage: optional MinIO/S3 mirror of backups
//   - Server: HTTP port, API key, plan cache TTL
//
// List values (project.tracked, project.archives, project.library_dirs) accept a comma
// separated string in environment variables.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.Descriptor)
package config
