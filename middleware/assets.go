package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"sync"
)

// Static assets referenced by the layout, relative to the working directory.
const (
	cssAssetPath  = "static/css/app.css"
	formAssetPath = "static/js/form.js"
)

var (
	cssVersion        string
	formJSVersion     string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		cssVersion = computeFileHash(cssAssetPath)
		if cssVersion == "" {
			cssVersion = "1"
		}
		formJSVersion = computeFileHash(formAssetPath)
		if formJSVersion == "" {
			formJSVersion = "1"
		}
		log.Printf("[INFO] Asset versions initialized: css=%s form.js=%s", cssVersion, formJSVersion)
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[WARNING] Failed to open file for hashing %s: %v", path, err)
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Printf("[WARNING] Failed to hash file %s: %v", path, err)
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the CSS file version hash for cache busting.
// The version is computed once at startup; ctx keeps the signature in line
// with the other template helpers.
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return "1"
	}
	return cssVersion
}

// GetFormJSVersion returns the form.js version hash for cache busting
func GetFormJSVersion(ctx context.Context) string {
	if formJSVersion == "" {
		return "1"
	}
	return formJSVersion
}
