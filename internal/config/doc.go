// Package config provides configuration management for the streaming
// service and its downloader worker.
//
// Configuration is read with viper from an optional config.json in the
// working directory and from environment variables, with the environment
// taking precedence. Key names use dashes in the file and underscores in
// the environment:
//
//	{"max-jobs": 8}        // config.json
//	MAX_JOBS=8             // environment
//
// Only the Spotify credentials are required; everything else has a
// default. See Settings for the full option list.
package config
