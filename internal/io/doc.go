// Package ioutils provides file system and image utilities for the
// downloader worker.
//
// # Filename Sanitization
//
// Library paths are built from provider metadata, so names must be
// cleaned before touching the file system:
//
//	safe := ioutils.SanitizeFileName("Song: Part 1/2") // "Song_ Part 1_2"
//
// # Cover Art
//
// PrepareCover resizes downloaded artwork and normalizes it to JPEG so
// it can be embedded as an ID3 attached picture:
//
//	cover, _ := ioutils.PrepareCover(artworkBytes, 1000)
package ioutils
